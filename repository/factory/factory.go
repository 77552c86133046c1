package factory

import (
	"context"

	"github.com/has-1997/Telegram-Nutrition-Assistant/repository"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/interfaces"
)

type Factory interface {
	NewSession(ctx context.Context) interfaces.Session
	NewProfileRepository(session interfaces.Session) (repository.ProfileRepository, error)
	NewMealLogRepository(session interfaces.Session) (repository.MealLogRepository, error)
}
