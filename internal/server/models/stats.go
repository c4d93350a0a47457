package models

// FrequentFood is one row of the frequency search.
type FrequentFood struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Calories Number `json:"calories"`
	Protein  Number `json:"protein"`
	Count    int64  `json:"count"`
}

// NutritionEntry is a historical entry considered by the nutrition search.
type NutritionEntry struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Calories Number `json:"calories"`
	Protein  Number `json:"protein"`
	// Matched is true when the entry's unit equals the requested one and it
	// contributed to the means.
	Matched bool `json:"matched"`
}

type NutritionResult struct {
	Quantity string           `json:"quantity"`
	Calories Number           `json:"calories"`
	Protein  Number           `json:"protein"`
	Entries  []NutritionEntry `json:"entries"`
}

// TrendPoint is one bucket of a historical trend.
type TrendPoint struct {
	Date  Date   `json:"date"`
	Value Number `json:"value"`
}

type BodyweightSummary struct {
	Units              string       `json:"units"`
	HourlyMean         []Number     `json:"hourly_mean"`
	HourlyDeviation    []Number     `json:"hourly_deviation"`
	Trend              []TrendPoint `json:"trend"`
	WeightChangePerDay Number       `json:"weight_change_per_day"`
	ShortTermAverage   Number       `json:"short_term_average"`
	Latest             Number       `json:"latest"`
}

type DailyCalories struct {
	Date     Date    `json:"date"`
	Calories float64 `json:"calories"`
}

type FoodSummary struct {
	History             []DailyCalories `json:"history"`
	CalorieChangePerDay Number          `json:"calorie_change_per_day"`
	AverageCalories     Number          `json:"average_calories"`
}
