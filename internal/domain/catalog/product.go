package catalog

import "github.com/google/uuid"

type NutritionPer100g struct {
	Calories float64  `json:"calories"`
	Proteins float64  `json:"proteins"`
	Carbs    float64  `json:"carbs"`
	Fats     float64  `json:"fats"`
	Fiber    *float64 `json:"fiber,omitempty"`
}

// ExternalProduct is one hit of the external catalog, already normalized.
type ExternalProduct struct {
	Name             string           `json:"name"`
	ImageURL         string           `json:"image_url,omitempty"`
	NutritionPer100g NutritionPer100g `json:"nutrition_per_100g"`
	Brand            string           `json:"brand,omitempty"`
	CountryTags      []string         `json:"country_tags,omitempty"`
	NutritionGrade   string           `json:"nutrition_grade,omitempty"`
	Quantity         string           `json:"quantity,omitempty"`
}

// CanonicalProduct is the single shape returned by every search path.
type CanonicalProduct struct {
	FoodID           *uuid.UUID       `json:"food_id,omitempty"`
	Name             string           `json:"name"`
	Image            string           `json:"image,omitempty"`
	NutritionPer100g NutritionPer100g `json:"nutrition_per_100g"`
	Brand            string           `json:"brand,omitempty"`
	IsLocaleMatch    bool             `json:"is_locale_match"`
	CanBeSaved       bool             `json:"can_be_saved"`
}

type SearchResultSet struct {
	FromLocal bool               `json:"from_local"`
	Total     int                `json:"total,omitempty"`
	Products  []CanonicalProduct `json:"products"`
}

func EmptyResult(fromLocal bool) SearchResultSet {
	return SearchResultSet{FromLocal: fromLocal, Products: []CanonicalProduct{}}
}

// FromFoodRecord maps a local catalog entry; local entries are never offered for saving.
func FromFoodRecord(f *FoodRecord) CanonicalProduct {
	id := f.ID
	p := CanonicalProduct{
		FoodID:           &id,
		Name:             f.Name,
		NutritionPer100g: f.Nutrition(),
		CanBeSaved:       false,
	}
	if f.Image != nil {
		p.Image = *f.Image
	}
	if f.Brand != nil {
		p.Brand = *f.Brand
	}
	return p
}

func FromExternal(p ExternalProduct, localeMatch bool) CanonicalProduct {
	return CanonicalProduct{
		Name:             p.Name,
		Image:            p.ImageURL,
		NutritionPer100g: p.NutritionPer100g,
		Brand:            p.Brand,
		IsLocaleMatch:    localeMatch,
		CanBeSaved:       true,
	}
}
