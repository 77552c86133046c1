package repository

import (
	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
)

// ProfileRepository 用户档案仓库
// Get 不存在时返回 (nil, nil)；UpdateTargets 对不存在的用户是 no-op
type ProfileRepository interface {
	Get(userID string) (*entity.Profile, error)
	Create(req *model.CreateProfileCondition) error
	UpdateTargets(req *model.UpdateProfileTargetsCondition) error
}
