package xormimplement

import (
	"fmt"
	"time"

	"xorm.io/builder"

	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository"
)

type ProfileRepository struct {
	session *Session
}

func NewProfileRepository(session *Session) repository.ProfileRepository {
	return &ProfileRepository{session: session}
}

func (r *ProfileRepository) Get(userID string) (*entity.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	result := &entity.Profile{}
	ok, err := r.session.Table(entity.TableNameProfile).
		Where(builder.Eq{entity.ProfileFieldUserID: userID}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *ProfileRepository) Create(req *model.CreateProfileCondition) error {
	if req == nil {
		return fmt.Errorf("create request cannot be nil")
	}
	if req.UserID == "" {
		return fmt.Errorf("user_id is required")
	}

	now := time.Now()
	newProfile := &entity.Profile{
		UserID:         req.UserID,
		Name:           req.Name,
		CaloriesTarget: req.CaloriesTarget,
		ProteinTarget:  req.ProteinTarget,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := r.session.Table(entity.TableNameProfile).Insert(newProfile); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) UpdateTargets(req *model.UpdateProfileTargetsCondition) error {
	if req == nil {
		return fmt.Errorf("update request cannot be nil")
	}
	if req.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !req.HasUpdates() {
		return fmt.Errorf("at least one target field is required")
	}

	updateData := map[string]interface{}{
		entity.ProfileFieldUpdatedAt: time.Now(),
	}
	if req.CaloriesTarget != nil {
		updateData[entity.ProfileFieldCaloriesTarget] = *req.CaloriesTarget
	}
	if req.ProteinTarget != nil {
		updateData[entity.ProfileFieldProteinTarget] = *req.ProteinTarget
	}

	// 用户不存在时影响行数为 0，按约定不报错
	_, err := r.session.Table(entity.TableNameProfile).
		Where(builder.Eq{entity.ProfileFieldUserID: req.UserID}).
		Update(updateData)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}
