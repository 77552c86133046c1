package entity

import "time"

const (
	TableNameMeal = "meal"

	MealFieldID          = "id"
	MealFieldUserID      = "user_id"
	MealFieldDate        = "date"
	MealFieldDescription = "description"
	MealFieldCalories    = "calories"
	MealFieldProteins    = "proteins"
	MealFieldCarbs       = "carbs"
	MealFieldFats        = "fats"
	MealFieldCreatedAt   = "created_at"
)

// Meal 一次记录的进食，按 (user_id, date) 归属到某个 UTC 日
// 只追加，创建后不可修改或删除；日报时对当天全部行求和
type Meal struct {
	ID          int64     `xorm:"pk autoincr 'id'" json:"id"`
	UserID      string    `xorm:"user_id index" json:"user_id"`
	Date        string    `xorm:"date index" json:"date"` // UTC 日，格式 2006-01-02
	Description string    `xorm:"description" json:"description"`
	Calories    float64   `xorm:"calories" json:"calories"`
	Proteins    float64   `xorm:"proteins" json:"proteins"`
	Carbs       float64   `xorm:"carbs" json:"carbs"`
	Fats        float64   `xorm:"fats" json:"fats"`
	CreatedAt   time.Time `xorm:"created_at" json:"created_at"`
}

func (e *Meal) TableName() string {
	return TableNameMeal
}
