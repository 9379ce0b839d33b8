package normalization

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutrientsMapsKnownKeys(t *testing.T) {
	got := Nutrients(map[string]any{
		"energy-kcal_100g":   89.0,
		"proteins_100g":      "1.1",
		"carbohydrates_100g": json.Number("22.8"),
		"fat_100g":           0.3,
		"sugars_100g":        12.2,
	})
	assert.Equal(t, 89.0, got.Calories)
	assert.Equal(t, 1.1, got.Proteins)
	assert.Equal(t, 22.8, got.Carbs)
	assert.Equal(t, 0.3, got.Fats)
	assert.Nil(t, got.Fiber)
}

func TestNutrientsDefaultsToZero(t *testing.T) {
	got := Nutrients(map[string]any{
		"energy-kcal_100g": "n/a",
		"proteins_100g":    math.NaN(),
		"fat_100g":         nil,
		"fiber_100g":       "2,6",
	})
	assert.Zero(t, got.Calories)
	assert.Zero(t, got.Proteins)
	assert.Zero(t, got.Carbs)
	assert.Zero(t, got.Fats)
	require.NotNil(t, got.Fiber)
	assert.Equal(t, 2.6, *got.Fiber)

	empty := Nutrients(nil)
	assert.Zero(t, empty.Calories)
}

func TestNutrientsIdempotent(t *testing.T) {
	raw := map[string]any{"energy-kcal_100g": 52, "proteins_100g": 0.3}
	assert.Equal(t, Nutrients(raw), Nutrients(raw))
}

func TestQueryHelpers(t *testing.T) {
	assert.Equal(t, "Banana Bread", Query("  Banana Bread "))
	assert.Equal(t, "banana bread", FoldQuery("  Banana Bread "))
	assert.Equal(t, `%50\%\_off%`, LikePattern("50%_OFF"))

	blank := "   "
	assert.Nil(t, OptionalText(&blank))
	assert.Nil(t, OptionalText(nil))
	b := " Albert "
	require.NotNil(t, OptionalText(&b))
	assert.Equal(t, "Albert", *OptionalText(&b))
}
