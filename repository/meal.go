package repository

import (
	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
)

// MealLogRepository 进食记录仓库，只追加
// ListForDate 按插入顺序返回
type MealLogRepository interface {
	Append(req *model.AppendMealCondition) error
	ListForDate(userID, date string) ([]*entity.Meal, error)
}
