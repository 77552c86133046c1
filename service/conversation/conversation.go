// Package conversation 会话路由
// 每条入站消息先判断发送者是否已有档案：没有就走注册状态机，
// 有就交给 dispatch。同一用户的消息全程持锁串行处理
package conversation

import (
	"context"
	"fmt"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/tools"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/factory"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/session"
)

// TargetEstimator 每日目标估算，由 pkg/agent 实现
type TargetEstimator interface {
	Estimate(ctx context.Context, weightKg, heightCm float64, ageYears int, goal string) (float64, float64, error)
}

// Dispatcher 主模式消息分发，由 service/dispatch 实现
type Dispatcher interface {
	Dispatch(ctx context.Context, userID, messageText string) (string, *model.Error)
	AppendMeal(ctx context.Context, userID string, meal *model.MealPayload) (string, *model.Error)
}

type Engine struct {
	repositoryFactory factory.Factory
	sessionStore      session.Store
	estimator         TargetEstimator
	dispatcher        Dispatcher
}

func NewEngine(repositoryFactory factory.Factory, sessionStore session.Store, estimator TargetEstimator, dispatcher Dispatcher) *Engine {
	return &Engine{
		repositoryFactory: repositoryFactory,
		sessionStore:      sessionStore,
		estimator:         estimator,
		dispatcher:        dispatcher,
	}
}

// HandleStart 处理 /start：无条件重置会话状态
// 已有档案的用户直接回到主模式，否则从 ask_name 重新开始
func (e *Engine) HandleStart(ctx context.Context, userID string) (string, *model.Error) {
	unlock := e.sessionStore.Lock(userID)
	defer unlock()

	profile, modelErr := e.getProfile(ctx, userID)
	if modelErr != nil {
		return constant.EmptyString, modelErr
	}

	if profile != nil {
		if err := e.sessionStore.Delete(ctx, userID); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return fmt.Sprintf(constant.MsgWelcomeBack, profile.Name), nil
	}

	sess := session.NewRegistrationSession(userID)
	if err := e.sessionStore.Save(ctx, sess); err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}
	return constant.MsgAskName, nil
}

// HandleText 处理一条普通文本消息（语音转写后的文本也走这里）
func (e *Engine) HandleText(ctx context.Context, userID, text string) (string, *model.Error) {
	unlock := e.sessionStore.Lock(userID)
	defer unlock()

	sess, err := e.sessionStore.Get(ctx, userID)
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}
	if sess != nil && sess.Mode == session.ModeRegistration {
		return e.handleRegistrationStep(ctx, sess, text)
	}

	profile, modelErr := e.getProfile(ctx, userID)
	if modelErr != nil {
		return constant.EmptyString, modelErr
	}

	// 未注册用户发什么都会进注册流程，触发消息本身不当作名字
	if profile == nil {
		sess := session.NewRegistrationSession(userID)
		if err := e.sessionStore.Save(ctx, sess); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return constant.MsgAskName, nil
	}

	return e.dispatcher.Dispatch(ctx, userID, text)
}

// HandleMealPhoto 处理照片分析出的一餐
// 动作没有歧义，不走意图分类；未注册用户照样被引导去注册
func (e *Engine) HandleMealPhoto(ctx context.Context, userID string, meal *model.MealPayload) (string, *model.Error) {
	unlock := e.sessionStore.Lock(userID)
	defer unlock()

	sess, err := e.sessionStore.Get(ctx, userID)
	if err != nil {
		return constant.EmptyString, model.NewError(model.ErrorDB, err)
	}
	if sess != nil && sess.Mode == session.ModeRegistration {
		return registrationPrompt(sess), nil
	}

	profile, modelErr := e.getProfile(ctx, userID)
	if modelErr != nil {
		return constant.EmptyString, modelErr
	}
	if profile == nil {
		fresh := session.NewRegistrationSession(userID)
		if err := e.sessionStore.Save(ctx, fresh); err != nil {
			return constant.EmptyString, model.NewError(model.ErrorDB, err)
		}
		return constant.MsgAskName, nil
	}

	return e.dispatcher.AppendMeal(ctx, userID, meal)
}

func (e *Engine) getProfile(ctx context.Context, userID string) (*entity.Profile, *model.Error) {
	dbSession := e.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(dbSession.Close, "close session")

	profileRepo, err := e.repositoryFactory.NewProfileRepository(dbSession)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	profile, err := profileRepo.Get(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return profile, nil
}
