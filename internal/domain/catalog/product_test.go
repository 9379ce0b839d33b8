package catalog

import (
	"testing"

	"github.com/google/uuid"
)

func TestFromFoodRecordIsNotSavable(t *testing.T) {
	brand := "Chiquita"
	f := &FoodRecord{ID: uuid.New(), Name: "Banana", Brand: &brand, Calories: 89}
	p := FromFoodRecord(f)
	if p.CanBeSaved {
		t.Fatalf("local product must not be savable")
	}
	if p.FoodID == nil || *p.FoodID != f.ID {
		t.Fatalf("expected food id to be carried")
	}
	if p.Brand != "Chiquita" || p.NutritionPer100g.Calories != 89 {
		t.Fatalf("unexpected mapping: %+v", p)
	}
}

func TestFromExternalIsSavable(t *testing.T) {
	p := FromExternal(ExternalProduct{Name: "Quinoa CZ", ImageURL: "https://img/q.jpg"}, true)
	if !p.CanBeSaved || !p.IsLocaleMatch || p.Image != "https://img/q.jpg" {
		t.Fatalf("unexpected mapping: %+v", p)
	}
}

func TestEmptyResultHasNonNilProducts(t *testing.T) {
	r := EmptyResult(true)
	if r.Products == nil || len(r.Products) != 0 || !r.FromLocal {
		t.Fatalf("unexpected empty result: %+v", r)
	}
}
