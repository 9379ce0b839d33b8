package meals

import (
	"math"
	"time"
)

type NutritionTotals struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Proteins float64 `json:"proteins" yaml:"proteins"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fats     float64 `json:"fats" yaml:"fats"`
}

// Add accumulates the contribution of amount grams of a food with the given per-100 g values.
func (t *NutritionTotals) Add(per100 NutritionTotals, amount float64) {
	m := amount / 100
	t.Calories += per100.Calories * m
	t.Proteins += per100.Proteins * m
	t.Carbs += per100.Carbs * m
	t.Fats += per100.Fats * m
}

func (t NutritionTotals) Rounded() NutritionTotals {
	return NutritionTotals{
		Calories: math.Round(t.Calories),
		Proteins: math.Round(t.Proteins),
		Carbs:    math.Round(t.Carbs),
		Fats:     math.Round(t.Fats),
	}
}

type Goals = NutritionTotals

var DefaultGoals = Goals{Calories: 2000, Proteins: 150, Carbs: 200, Fats: 70}

type DailySummary struct {
	Date    time.Time       `json:"date"`
	Totals  NutritionTotals `json:"totals"`
	Goals   Goals           `json:"goals"`
	Percent NutritionTotals `json:"percent"`
}

// PercentOf caps progress at 100 and reports 0 for non-positive goals.
func PercentOf(value, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(math.Round(value/goal*100), 100)
}

func NewDailySummary(day time.Time, totals NutritionTotals, goals Goals) DailySummary {
	return DailySummary{
		Date:   StartOfDay(day),
		Totals: totals,
		Goals:  goals,
		Percent: NutritionTotals{
			Calories: PercentOf(totals.Calories, goals.Calories),
			Proteins: PercentOf(totals.Proteins, goals.Proteins),
			Carbs:    PercentOf(totals.Carbs, goals.Carbs),
			Fats:     PercentOf(totals.Fats, goals.Fats),
		},
	}
}
