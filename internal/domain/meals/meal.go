package meals

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/domain/catalog"
)

type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
	MealTypeSnack     MealType = "SNACK"
)

var mealTypeOrder = map[MealType]int{
	MealTypeBreakfast: 0,
	MealTypeLunch:     1,
	MealTypeDinner:    2,
	MealTypeSnack:     3,
}

// ParseMealType accepts any casing of the four meal slots.
func ParseMealType(raw string) (MealType, bool) {
	t := MealType(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := mealTypeOrder[t]
	return t, ok
}

// Rank orders meal slots through the day; unknown types sort last.
func (t MealType) Rank() int {
	if r, ok := mealTypeOrder[t]; ok {
		return r
	}
	return len(mealTypeOrder)
}

// Meal is one meal slot of a user on a calendar day. At most one live Meal
// exists per (user, type, date); see db.EnsureMealIndexes.
type Meal struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Type   MealType  `gorm:"type:varchar(16);not null;column:type" json:"type"`
	Name   string    `gorm:"not null;column:name" json:"name"`
	Date   time.Time `gorm:"not null;index;column:date" json:"date"`

	Lines []MealLine `gorm:"foreignKey:MealID" json:"lines,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Meal) TableName() string { return "meal" }

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealLine is one logged portion of a food. Lines are never updated in place.
type MealLine struct {
	ID     uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	MealID uuid.UUID           `gorm:"type:uuid;not null;index;column:meal_id" json:"meal_id"`
	FoodID uuid.UUID           `gorm:"type:uuid;not null;index;column:food_id" json:"food_id"`
	Food   *catalog.FoodRecord `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Amount float64             `gorm:"not null;column:amount" json:"amount"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (MealLine) TableName() string { return "meal_line" }

func (l *MealLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// StartOfDay truncates t to midnight UTC, the key used for Meal.Date.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
