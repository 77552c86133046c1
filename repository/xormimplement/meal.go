package xormimplement

import (
	"fmt"
	"time"

	"xorm.io/builder"

	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository"
)

type MealLogRepository struct {
	session *Session
}

func NewMealLogRepository(session *Session) repository.MealLogRepository {
	return &MealLogRepository{session: session}
}

func (r *MealLogRepository) Append(req *model.AppendMealCondition) error {
	if req == nil {
		return fmt.Errorf("append request cannot be nil")
	}
	if req.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if req.Date == "" {
		return fmt.Errorf("date is required")
	}

	newMeal := &entity.Meal{
		UserID:      req.UserID,
		Date:        req.Date,
		Description: req.Description,
		Calories:    req.Calories,
		Proteins:    req.Proteins,
		Carbs:       req.Carbs,
		Fats:        req.Fats,
		CreatedAt:   time.Now(),
	}
	if _, err := r.session.Table(entity.TableNameMeal).Insert(newMeal); err != nil {
		return fmt.Errorf("failed to insert meal: %w", err)
	}

	return nil
}

func (r *MealLogRepository) ListForDate(userID, date string) ([]*entity.Meal, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}

	condition := &model.GetMealsCondition{
		UserID: &userID,
		Date:   &date,
	}

	session := r.session.Table(entity.TableNameMeal).
		Where(builder.Eq{
			entity.MealFieldUserID: userID,
			entity.MealFieldDate:   date,
		})

	// 自增主键升序 = 插入顺序
	pagerOrder(session, condition,
		WithDefaultOrderField(entity.MealFieldID),
		WithDefaultOrderAsc(),
	)

	var results []*entity.Meal
	if err := session.Find(&results); err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return results, nil
}
