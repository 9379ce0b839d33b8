package normalization

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yungbote/nutrilog-backend/internal/domain/catalog"
	"github.com/yungbote/nutrilog-backend/internal/pkg/pointers"
)

const (
	KeyCalories = "energy-kcal_100g"
	KeyProteins = "proteins_100g"
	KeyCarbs    = "carbohydrates_100g"
	KeyFats     = "fat_100g"
	KeyFiber    = "fiber_100g"
)

// Nutrients maps an upstream nutriments object to per-100 g values.
// Missing or unparseable macros become 0; fiber stays nil when absent.
func Nutrients(raw map[string]any) catalog.NutritionPer100g {
	out := catalog.NutritionPer100g{
		Calories: number(raw, KeyCalories),
		Proteins: number(raw, KeyProteins),
		Carbs:    number(raw, KeyCarbs),
		Fats:     number(raw, KeyFats),
	}
	if _, ok := raw[KeyFiber]; ok {
		out.Fiber = pointers.Float64(number(raw, KeyFiber))
	}
	return out
}

func number(raw map[string]any, key string) float64 {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(n, ",", ".")), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
