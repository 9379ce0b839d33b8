package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/pkg/pointers"
)

// FoodRecord is an entry of the local food catalog. Nutrients are per 100 g.
type FoodRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null;index;column:name" json:"name"`
	Brand    *string   `gorm:"column:brand;index" json:"brand,omitempty"`
	Image    *string   `gorm:"column:image" json:"image,omitempty"`
	Barcode  *string   `gorm:"uniqueIndex;column:barcode" json:"barcode,omitempty"`
	Calories float64   `gorm:"not null;default:0;column:calories" json:"calories"`
	Proteins float64   `gorm:"not null;default:0;column:proteins" json:"proteins"`
	Carbs    float64   `gorm:"not null;default:0;column:carbs" json:"carbs"`
	Fats     float64   `gorm:"not null;default:0;column:fats" json:"fats"`

	// Lowercased copies of name and brand used by substring search.
	NameFolded  string  `gorm:"not null;default:'';column:name_folded;index" json:"-"`
	BrandFolded *string `gorm:"column:brand_folded;index" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (FoodRecord) TableName() string { return "food" }

func (f *FoodRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *FoodRecord) BeforeSave(tx *gorm.DB) error {
	f.Fold()
	return nil
}

// Fold refreshes NameFolded and BrandFolded from Name and Brand.
func (f *FoodRecord) Fold() {
	f.NameFolded = strings.ToLower(f.Name)
	f.BrandFolded = nil
	if f.Brand != nil {
		f.BrandFolded = pointers.String(strings.ToLower(*f.Brand))
	}
}

func (f *FoodRecord) Nutrition() NutritionPer100g {
	return NutritionPer100g{
		Calories: f.Calories,
		Proteins: f.Proteins,
		Carbs:    f.Carbs,
		Fats:     f.Fats,
	}
}

// FoodInput is the writable shape of a FoodRecord.
type FoodInput struct {
	Name     string  `json:"name" validate:"required"`
	Brand    *string `json:"brand,omitempty"`
	Image    *string `json:"image,omitempty" validate:"omitempty,url"`
	Barcode  *string `json:"barcode,omitempty"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Proteins float64 `json:"proteins" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fats     float64 `json:"fats" validate:"gte=0"`
}
