package model

// DailyReport 某用户某个 UTC 日的汇总结果
type DailyReport struct {
	UserID         string  `json:"user_id"`
	Date           string  `json:"date"`
	MealCount      int     `json:"meal_count"`
	TotalCalories  float64 `json:"total_calories"`
	TotalProteins  float64 `json:"total_proteins"`
	TotalCarbs     float64 `json:"total_carbs"`
	TotalFats      float64 `json:"total_fats"`
	CaloriesTarget float64 `json:"calories_target"`
	ProteinTarget  float64 `json:"protein_target"`
	Text           string  `json:"text"` // 渲染好的用户可见报表
}
