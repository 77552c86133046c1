// Package dispatch 主模式消息分发
// 把已注册用户的一条自由文本变成四种效果之一：
// 记一餐、改目标、出日报、普通对话
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/str"
	projecttime "github.com/has-1997/Telegram-Nutrition-Assistant/pkg/time"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/tools"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/factory"
)

// IntentClassifier 意图分类，由 pkg/agent 实现
type IntentClassifier interface {
	Classify(ctx context.Context, messageText, profileSummary string) (*model.IntentResult, error)
}

// ReportBuilder 日报聚合，由 service/report 实现
type ReportBuilder interface {
	BuildDaily(ctx context.Context, userID, date string) (*model.DailyReport, *model.Error)
}

type Service struct {
	repositoryFactory factory.Factory
	classifier        IntentClassifier
	reportBuilder     ReportBuilder
}

func NewService(repositoryFactory factory.Factory, classifier IntentClassifier, reportBuilder ReportBuilder) *Service {
	return &Service{
		repositoryFactory: repositoryFactory,
		classifier:        classifier,
		reportBuilder:     reportBuilder,
	}
}

// Dispatch 处理一条主模式文本，返回回复文案
// 每条消息恰好产生一个分支的效果，写操作只尝试一次不重试
func (s *Service) Dispatch(ctx context.Context, userID, messageText string) (string, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo, err := s.repositoryFactory.NewProfileRepository(session)
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorNewRepo, err)
	}

	profile, err := profileRepo.Get(userID)
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}
	if profile == nil {
		return constant.EmptyString, model.NewError(model.ErrorProfileNotFound, nil)
	}

	result, err := s.classifier.Classify(ctx, messageText, ProfileSummary(profile))
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorLLM, err)
	}

	switch result.Action {
	case model.ActionAppendMeal:
		return s.appendMeal(ctx, userID, result)
	case model.ActionUpdateProfile:
		return s.updateProfile(ctx, userID, result)
	case model.ActionGetReport:
		return s.getReport(ctx, userID, result)
	default:
		return chatReply(result), nil
	}
}

// AppendMeal 直接落一条进食记录，照片路径也走这里
func (s *Service) AppendMeal(ctx context.Context, userID string, meal *model.MealPayload) (string, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	mealRepo, err := s.repositoryFactory.NewMealLogRepository(session)
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorNewRepo, err)
	}

	description := strings.TrimSpace(meal.Description)
	if description == constant.EmptyString {
		description = "meal"
	}

	req := &model.AppendMealCondition{
		UserID:      userID,
		Date:        projecttime.UTCDayString(),
		Description: description,
		Calories:    clampNonNegative(meal.Calories),
		Proteins:    clampNonNegative(meal.Proteins),
		Carbs:       clampNonNegative(meal.Carbs),
		Fats:        clampNonNegative(meal.Fats),
	}
	if err := mealRepo.Append(req); err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}

	log.Infof("Appended meal for user %s: %s (%s kcal)", userID, description, str.FormatMacro(req.Calories))

	return fmt.Sprintf("Logged: %s (%s kcal, %s g protein, %s g carbs, %s g fat)",
		description,
		str.FormatMacro(req.Calories), str.FormatMacro(req.Proteins),
		str.FormatMacro(req.Carbs), str.FormatMacro(req.Fats)), nil
}

func (s *Service) appendMeal(ctx context.Context, userID string, result *model.IntentResult) (string, *model.Error) {
	// 分类器说记餐但没给出内容，按普通对话处理
	if result.Meal == nil {
		return chatReply(result), nil
	}

	summary, dispatchErr := s.AppendMeal(ctx, userID, result.Meal)
	if dispatchErr != nil {
		return constant.EmptyString, dispatchErr
	}

	// 教练式回复 + 实际落库内容的摘要行
	if reply := strings.TrimSpace(result.Reply); reply != constant.EmptyString {
		return reply + "\n\n" + summary, nil
	}
	return summary, nil
}

func (s *Service) updateProfile(ctx context.Context, userID string, result *model.IntentResult) (string, *model.Error) {
	req := &model.UpdateProfileTargetsCondition{UserID: userID}

	for key, raw := range result.ProfileUpdates {
		value := coerceNumber(raw)
		if value <= 0 {
			continue
		}
		switch {
		case matchesKey(key, constant.CaloriesUpdateKeys):
			v := value
			req.CaloriesTarget = &v
		case matchesKey(key, constant.ProteinUpdateKeys):
			v := value
			req.ProteinTarget = &v
		default:
			log.Warnf("Ignoring unknown profile update key %q for user %s", key, userID)
		}
	}

	if !req.HasUpdates() {
		return constant.MsgUpdateClarify, nil
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo, err := s.repositoryFactory.NewProfileRepository(session)
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorNewRepo, err)
	}
	if err := profileRepo.UpdateTargets(req); err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}

	if reply := strings.TrimSpace(result.Reply); reply != constant.EmptyString {
		return reply, nil
	}
	return "Done, your targets are updated.", nil
}

func (s *Service) getReport(ctx context.Context, userID string, result *model.IntentResult) (string, *model.Error) {
	date, ok := ResolveReportDate(result.ReportDate)
	if !ok {
		return constant.MsgReportBadDate, nil
	}

	dailyReport, dispatchErr := s.reportBuilder.BuildDaily(ctx, userID, date)
	if dispatchErr != nil {
		return constant.EmptyString, dispatchErr
	}
	return dailyReport.Text, nil
}

// ResolveReportDate 把分类器给的日期串归一成存储键
// 空串和 today 系别名都算今天；其他必须是合法的 2006-01-02
func ResolveReportDate(raw string) (string, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == constant.EmptyString || constant.TodayAliases[cleaned] {
		return projecttime.UTCDayString(), true
	}
	if _, err := projecttime.ParseDayString(cleaned); err != nil {
		return constant.EmptyString, false
	}
	return cleaned, true
}

// ProfileSummary 给分类器提示词用的档案摘要
func ProfileSummary(profile *entity.Profile) string {
	return fmt.Sprintf("Name: %s. Daily targets: %s kcal, %s g protein.",
		profile.Name,
		str.FormatMacro(profile.CaloriesTarget),
		str.FormatMacro(profile.ProteinTarget))
}

func chatReply(result *model.IntentResult) string {
	if reply := strings.TrimSpace(result.Reply); reply != constant.EmptyString {
		return reply
	}
	return constant.MsgGenericChatReply
}

func matchesKey(key string, known []string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, k := range known {
		if lower == k {
			return true
		}
	}
	return false
}

// coerceNumber 宽容地把分类器给的值转成数字，失败得 0
// 模型偶尔会把数字放进字符串里，cast 两种都能接
func coerceNumber(raw json.RawMessage) float64 {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	return cast.ToFloat64(v)
}

func clampNonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
