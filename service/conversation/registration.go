package conversation

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/agent"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/str"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/tools"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/session"
)

// handleRegistrationStep 注册状态机推进一步
// 解析失败一律重新提问且不改 step，可以无限重试；不做取值范围校验
func (e *Engine) handleRegistrationStep(ctx context.Context, sess *session.Session, text string) (string, *model.Error) {
	answer := strings.TrimSpace(text)

	switch sess.Step {
	case session.StepAskName:
		sess.Data.Name = answer
		sess.Step = session.StepAskKnowTargets
		if err := e.sessionStore.Save(ctx, sess); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return fmt.Sprintf(constant.MsgAskKnowTargets, sess.Data.Name), nil

	case session.StepAskKnowTargets:
		lower := strings.ToLower(answer)
		switch {
		case constant.AffirmativeWords[lower]:
			sess.Data.KnowsTargets = true
			sess.Step = session.StepAskCaloriesTarget
			if err := e.sessionStore.Save(ctx, sess); err != nil {
				return constant.EmptyString, model.NewError(model.ErrorDB, err)
			}
			return constant.MsgAskCaloriesTarget, nil
		case constant.NegativeWords[lower]:
			sess.Data.KnowsTargets = false
			sess.Step = session.StepAskWeight
			if err := e.sessionStore.Save(ctx, sess); err != nil {
				return constant.EmptyString, model.NewError(model.ErrorDB, err)
			}
			return constant.MsgAskWeight, nil
		default:
			return constant.MsgReAskKnowTargets, nil
		}

	case session.StepAskCaloriesTarget:
		value, err := str.StringToFloat(answer)
		if err != nil {
			return constant.MsgReAskCaloriesTarget, nil
		}
		sess.Data.CaloriesTarget = value
		sess.Step = session.StepAskProteinTarget
		if err := e.sessionStore.Save(ctx, sess); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return constant.MsgAskProteinTarget, nil

	case session.StepAskProteinTarget:
		value, err := str.StringToFloat(answer)
		if err != nil {
			return constant.MsgReAskProteinTarget, nil
		}
		sess.Data.ProteinTarget = value
		return e.finishRegistration(ctx, sess, sess.Data.CaloriesTarget, sess.Data.ProteinTarget)

	case session.StepAskWeight:
		value, err := str.StringToFloat(answer)
		if err != nil {
			return constant.MsgReAskWeight, nil
		}
		sess.Data.WeightKg = value
		sess.Step = session.StepAskHeight
		if err := e.sessionStore.Save(ctx, sess); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return constant.MsgAskHeight, nil

	case session.StepAskHeight:
		value, err := str.StringToFloat(answer)
		if err != nil {
			return constant.MsgReAskHeight, nil
		}
		sess.Data.HeightCm = value
		sess.Step = session.StepAskAge
		if err := e.sessionStore.Save(ctx, sess); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return constant.MsgAskAge, nil

	case session.StepAskAge:
		value, err := str.StringToInt(answer)
		if err != nil {
			return constant.MsgReAskAge, nil
		}
		sess.Data.AgeYears = value
		sess.Step = session.StepAskGoal
		if err := e.sessionStore.Save(ctx, sess); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return constant.MsgAskGoal, nil

	case session.StepAskGoal:
		sess.Data.GoalRaw = answer
		goal := NormalizeGoal(answer)

		calories, protein, err := e.estimator.Estimate(ctx,
			sess.Data.WeightKg, sess.Data.HeightCm, sess.Data.AgeYears, goal)
		if err != nil {
			log.Warnf("Target estimation failed for user %s, using fallback: %v", sess.UserID, err)
			calories, protein = agent.FallbackTargets(sess.Data.WeightKg)
		}
		return e.finishRegistration(ctx, sess, calories, protein)

	default:
		// 状态损坏，重置到注册起点
		log.Errorf("Unknown registration step %q for user %s, restarting registration", sess.Step, sess.UserID)
		fresh := session.NewRegistrationSession(sess.UserID)
		if err := e.sessionStore.Save(ctx, fresh); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return constant.MsgAskName, nil
	}
}

// finishRegistration 创建档案并清掉会话
// 落库失败时保留会话在当前步，用户重发答案即可重试
func (e *Engine) finishRegistration(ctx context.Context, sess *session.Session, calories, protein float64) (string, *model.Error) {
	dbSession := e.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(dbSession.Close, "close session")

	profileRepo, err := e.repositoryFactory.NewProfileRepository(dbSession)
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorNewRepo, err)
	}

	req := &model.CreateProfileCondition{
		UserID:         sess.UserID,
		Name:           sess.Data.Name,
		CaloriesTarget: calories,
		ProteinTarget:  protein,
	}
	if err := profileRepo.Create(req); err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}

	if err := e.sessionStore.Delete(ctx, sess.UserID); err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}

	log.Infof("Registered user %s with targets %s kcal / %s g protein",
		sess.UserID, str.FormatMacro(calories), str.FormatMacro(protein))

	return fmt.Sprintf(constant.MsgRegistrationDone,
		sess.Data.Name, str.FormatMacro(calories), str.FormatMacro(protein)), nil
}

// registrationPrompt 当前步的提问文案
// 注册没走完时收到照片之类的输入，用它原地重复提问
func registrationPrompt(sess *session.Session) string {
	switch sess.Step {
	case session.StepAskKnowTargets:
		return fmt.Sprintf(constant.MsgAskKnowTargets, sess.Data.Name)
	case session.StepAskCaloriesTarget:
		return constant.MsgAskCaloriesTarget
	case session.StepAskProteinTarget:
		return constant.MsgAskProteinTarget
	case session.StepAskWeight:
		return constant.MsgAskWeight
	case session.StepAskHeight:
		return constant.MsgAskHeight
	case session.StepAskAge:
		return constant.MsgAskAge
	case session.StepAskGoal:
		return constant.MsgAskGoal
	default:
		return constant.MsgAskName
	}
}

// NormalizeGoal 把自由文本目标归一成三个标准值
// 增肌词优先于减脂词，两边都不沾就算保持
func NormalizeGoal(raw string) string {
	if str.ContainsAnyFold(raw, constant.GainGoalKeywords) {
		return constant.GoalGainMuscle
	}
	if str.ContainsAnyFold(raw, constant.LoseGoalKeywords) {
		return constant.GoalLoseFat
	}
	return constant.GoalMaintain
}
