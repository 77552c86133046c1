// Package report 日报聚合
// 把某用户某天的全部进食记录汇总成总量，并对照档案目标渲染进度条
package report

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/str"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/tools"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/factory"
)

const (
	barCells    = 20
	barMaxRatio = 2.0 // 超过目标 200% 后进度条封顶
)

type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) *Service {
	return &Service{
		repositoryFactory: repositoryFactory,
	}
}

// BuildDaily 汇总 (userID, date) 的全部记录
// 无档案或当天无记录时，Text 是固定说明文案而不是零值报表
func (s *Service) BuildDaily(ctx context.Context, userID, date string) (*model.DailyReport, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo, err := s.repositoryFactory.NewProfileRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	profile, err := profileRepo.Get(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if profile == nil {
		return &model.DailyReport{
			UserID: userID,
			Date:   date,
			Text:   constant.MsgReportNoProfile,
		}, nil
	}

	mealRepo, err := s.repositoryFactory.NewMealLogRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	meals, err := mealRepo.ListForDate(userID, date)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	result := &model.DailyReport{
		UserID:         userID,
		Date:           date,
		MealCount:      len(meals),
		CaloriesTarget: profile.CaloriesTarget,
		ProteinTarget:  profile.ProteinTarget,
	}

	if len(meals) == 0 {
		result.Text = fmt.Sprintf(constant.MsgReportNoMeals, date)
		return result, nil
	}

	for _, meal := range meals {
		result.TotalCalories += meal.Calories
		result.TotalProteins += meal.Proteins
		result.TotalCarbs += meal.Carbs
		result.TotalFats += meal.Fats
	}
	result.Text = renderText(result)

	return result, nil
}

func renderText(r *model.DailyReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Report for %s\n\n", r.Date))
	b.WriteString(fmt.Sprintf("Meals logged: %d\n\n", r.MealCount))

	b.WriteString(fmt.Sprintf("Calories: %s / %s kcal (%d%%)\n%s\n\n",
		str.FormatMacro(r.TotalCalories), str.FormatMacro(r.CaloriesTarget),
		percentOf(r.TotalCalories, r.CaloriesTarget),
		renderBar(r.TotalCalories, r.CaloriesTarget)))

	b.WriteString(fmt.Sprintf("Protein: %s / %s g (%d%%)\n%s\n\n",
		str.FormatMacro(r.TotalProteins), str.FormatMacro(r.ProteinTarget),
		percentOf(r.TotalProteins, r.ProteinTarget),
		renderBar(r.TotalProteins, r.ProteinTarget)))

	b.WriteString(fmt.Sprintf("Carbs: %s g\n", str.FormatMacro(r.TotalCarbs)))
	b.WriteString(fmt.Sprintf("Fats: %s g", str.FormatMacro(r.TotalFats)))

	return b.String()
}

func percentOf(value, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(value / target * 100))
}

// renderBar 20 格进度条，每格代表目标的 10%，200% 满格
func renderBar(value, target float64) string {
	filled := 0
	if target > 0 {
		ratio := value / target
		if ratio > barMaxRatio {
			ratio = barMaxRatio
		}
		filled = int(math.Round(ratio * barCells / barMaxRatio))
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled) + "]"
}
