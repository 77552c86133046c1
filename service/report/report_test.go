package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/interfaces"
)

type fakeSession struct{}

func (fakeSession) Begin() error    { return nil }
func (fakeSession) Close() error    { return nil }
func (fakeSession) Commit() error   { return nil }
func (fakeSession) Rollback() error { return nil }

type fakeProfileRepo struct {
	profile *entity.Profile
}

func (f *fakeProfileRepo) Get(userID string) (*entity.Profile, error) { return f.profile, nil }
func (f *fakeProfileRepo) Create(req *model.CreateProfileCondition) error {
	return nil
}
func (f *fakeProfileRepo) UpdateTargets(req *model.UpdateProfileTargetsCondition) error {
	return nil
}

type fakeMealRepo struct {
	meals []*entity.Meal
}

func (f *fakeMealRepo) Append(req *model.AppendMealCondition) error { return nil }
func (f *fakeMealRepo) ListForDate(userID, date string) ([]*entity.Meal, error) {
	return f.meals, nil
}

type fakeFactory struct {
	profileRepo *fakeProfileRepo
	mealRepo    *fakeMealRepo
}

func (f *fakeFactory) NewSession(ctx context.Context) interfaces.Session { return fakeSession{} }
func (f *fakeFactory) NewProfileRepository(session interfaces.Session) (repository.ProfileRepository, error) {
	return f.profileRepo, nil
}
func (f *fakeFactory) NewMealLogRepository(session interfaces.Session) (repository.MealLogRepository, error) {
	return f.mealRepo, nil
}

func TestBuildDailyNoProfile(t *testing.T) {
	svc := NewService(&fakeFactory{
		profileRepo: &fakeProfileRepo{},
		mealRepo:    &fakeMealRepo{},
	})

	result, err := svc.BuildDaily(context.Background(), "42", "2024-05-01")
	assert.Nil(t, err)
	assert.Equal(t, constant.MsgReportNoProfile, result.Text)
}

func TestBuildDailyNoMeals(t *testing.T) {
	svc := NewService(&fakeFactory{
		profileRepo: &fakeProfileRepo{profile: &entity.Profile{
			UserID:         "42",
			Name:           "Alice",
			CaloriesTarget: 2200,
			ProteinTarget:  150,
		}},
		mealRepo: &fakeMealRepo{},
	})

	result, err := svc.BuildDaily(context.Background(), "42", "2024-05-01")
	assert.Nil(t, err)
	assert.Equal(t, 0, result.MealCount)
	assert.Contains(t, result.Text, "No meals logged for 2024-05-01")
}

func TestBuildDailySumsMeals(t *testing.T) {
	svc := NewService(&fakeFactory{
		profileRepo: &fakeProfileRepo{profile: &entity.Profile{
			UserID:         "42",
			Name:           "Alice",
			CaloriesTarget: 2200,
			ProteinTarget:  150,
		}},
		mealRepo: &fakeMealRepo{meals: []*entity.Meal{
			{Description: "oatmeal", Calories: 300, Proteins: 20, Carbs: 30, Fats: 10},
			{Description: "chicken rice", Calories: 500, Proteins: 40, Carbs: 50, Fats: 20},
		}},
	})

	result, err := svc.BuildDaily(context.Background(), "42", "2024-05-01")
	assert.Nil(t, err)
	assert.Equal(t, 2, result.MealCount)
	assert.Equal(t, float64(800), result.TotalCalories)
	assert.Equal(t, float64(60), result.TotalProteins)
	assert.Equal(t, float64(80), result.TotalCarbs)
	assert.Equal(t, float64(30), result.TotalFats)
	assert.Contains(t, result.Text, "Calories: 800 / 2200 kcal (36%)")
	assert.Contains(t, result.Text, "Protein: 60 / 150 g (40%)")
	assert.Contains(t, result.Text, "Carbs: 80 g")
	assert.Contains(t, result.Text, "Fats: 30 g")
}

func TestRenderBar(t *testing.T) {
	// 每格 10%，200% 封顶满格
	assert.Equal(t, "["+strings.Repeat("░", 20)+"]", renderBar(0, 2000))
	assert.Equal(t, "["+strings.Repeat("█", 10)+strings.Repeat("░", 10)+"]", renderBar(2000, 2000))
	assert.Equal(t, "["+strings.Repeat("█", 20)+"]", renderBar(4000, 2000))
	assert.Equal(t, "["+strings.Repeat("█", 20)+"]", renderBar(9000, 2000))
	// 目标为 0 时不渲染进度
	assert.Equal(t, "["+strings.Repeat("░", 20)+"]", renderBar(500, 0))
}
