package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/entity"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository"
	"github.com/has-1997/Telegram-Nutrition-Assistant/repository/interfaces"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/session"
)

type fakeSession struct{}

func (fakeSession) Begin() error    { return nil }
func (fakeSession) Close() error    { return nil }
func (fakeSession) Commit() error   { return nil }
func (fakeSession) Rollback() error { return nil }

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
	created  []*model.CreateProfileCondition
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (f *fakeProfileRepo) Get(userID string) (*entity.Profile, error) {
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) Create(req *model.CreateProfileCondition) error {
	f.created = append(f.created, req)
	f.profiles[req.UserID] = &entity.Profile{
		UserID:         req.UserID,
		Name:           req.Name,
		CaloriesTarget: req.CaloriesTarget,
		ProteinTarget:  req.ProteinTarget,
	}
	return nil
}

func (f *fakeProfileRepo) UpdateTargets(req *model.UpdateProfileTargetsCondition) error {
	return nil
}

type fakeMealRepo struct{}

func (fakeMealRepo) Append(req *model.AppendMealCondition) error { return nil }
func (fakeMealRepo) ListForDate(userID, date string) ([]*entity.Meal, error) {
	return nil, nil
}

type fakeFactory struct {
	profileRepo *fakeProfileRepo
	sessionCtxs []context.Context
}

func (f *fakeFactory) NewSession(ctx context.Context) interfaces.Session {
	f.sessionCtxs = append(f.sessionCtxs, ctx)
	return fakeSession{}
}
func (f *fakeFactory) NewProfileRepository(session interfaces.Session) (repository.ProfileRepository, error) {
	return f.profileRepo, nil
}
func (f *fakeFactory) NewMealLogRepository(session interfaces.Session) (repository.MealLogRepository, error) {
	return fakeMealRepo{}, nil
}

type fakeEstimator struct {
	calories float64
	protein  float64
	err      error
	calls    int
}

func (f *fakeEstimator) Estimate(ctx context.Context, weightKg, heightCm float64, ageYears int, goal string) (float64, float64, error) {
	f.calls++
	return f.calories, f.protein, f.err
}

type fakeDispatcher struct {
	reply string
	calls []string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, userID, messageText string) (string, *model.Error) {
	f.calls = append(f.calls, messageText)
	return f.reply, nil
}

func (f *fakeDispatcher) AppendMeal(ctx context.Context, userID string, meal *model.MealPayload) (string, *model.Error) {
	f.calls = append(f.calls, "photo:"+meal.Description)
	return f.reply, nil
}

type testEnv struct {
	engine      *Engine
	factory     *fakeFactory
	profileRepo *fakeProfileRepo
	store       session.Store
	estimator   *fakeEstimator
	dispatcher  *fakeDispatcher
}

func newTestEnv() *testEnv {
	profileRepo := newFakeProfileRepo()
	repoFactory := &fakeFactory{profileRepo: profileRepo}
	store := session.NewMemoryStore()
	estimator := &fakeEstimator{calories: 2500, protein: 140}
	dispatcher := &fakeDispatcher{reply: "dispatched"}
	engine := NewEngine(repoFactory, store, estimator, dispatcher)
	return &testEnv{
		engine:      engine,
		factory:     repoFactory,
		profileRepo: profileRepo,
		store:       store,
		estimator:   estimator,
		dispatcher:  dispatcher,
	}
}

func (env *testEnv) send(t *testing.T, text string) string {
	t.Helper()
	reply, err := env.engine.HandleText(context.Background(), "42", text)
	assert.Nil(t, err)
	return reply
}

func (env *testEnv) step(t *testing.T) session.Step {
	t.Helper()
	sess, err := env.store.Get(context.Background(), "42")
	assert.Nil(t, err)
	if sess == nil {
		return ""
	}
	return sess.Step
}

func TestUnregisteredTextStartsRegistration(t *testing.T) {
	env := newTestEnv()

	// 任意内容都触发注册，且不当作名字存起来
	reply := env.send(t, "hello, how many calories in an apple?")
	assert.Equal(t, constant.MsgAskName, reply)
	assert.Equal(t, session.StepAskName, env.step(t))

	sess, _ := env.store.Get(context.Background(), "42")
	assert.Equal(t, "", sess.Data.Name)
}

func TestKnowTargetsWordSets(t *testing.T) {
	for _, word := range []string{"yes", "Y", "YEAH", "yep", "Sure"} {
		env := newTestEnv()
		env.send(t, "hi")
		env.send(t, "Alice")
		reply := env.send(t, word)
		assert.Equal(t, constant.MsgAskCaloriesTarget, reply, "word %q", word)
		assert.Equal(t, session.StepAskCaloriesTarget, env.step(t))
	}

	for _, word := range []string{"no", "N", "Nope", "NAH"} {
		env := newTestEnv()
		env.send(t, "hi")
		env.send(t, "Alice")
		reply := env.send(t, word)
		assert.Equal(t, constant.MsgAskWeight, reply, "word %q", word)
		assert.Equal(t, session.StepAskWeight, env.step(t))
	}

	for _, word := range []string{"maybe", "yes please", "ok", ""} {
		env := newTestEnv()
		env.send(t, "hi")
		env.send(t, "Alice")
		reply := env.send(t, word)
		assert.Equal(t, constant.MsgReAskKnowTargets, reply, "word %q", word)
		assert.Equal(t, session.StepAskKnowTargets, env.step(t))
	}
}

func TestNonNumericAnswersNeverAdvance(t *testing.T) {
	env := newTestEnv()
	env.send(t, "hi")
	env.send(t, "Alice")
	env.send(t, "yes")

	assert.Equal(t, constant.MsgReAskCaloriesTarget, env.send(t, "about two thousand"))
	assert.Equal(t, session.StepAskCaloriesTarget, env.step(t))

	env.send(t, "2200")
	assert.Equal(t, constant.MsgReAskProteinTarget, env.send(t, "dunno"))
	assert.Equal(t, session.StepAskProteinTarget, env.step(t))

	env2 := newTestEnv()
	env2.send(t, "hi")
	env2.send(t, "Bob")
	env2.send(t, "no")

	assert.Equal(t, constant.MsgReAskWeight, env2.send(t, "heavy"))
	assert.Equal(t, session.StepAskWeight, env2.step(t))

	env2.send(t, "80")
	assert.Equal(t, constant.MsgReAskHeight, env2.send(t, "tall"))
	assert.Equal(t, session.StepAskHeight, env2.step(t))

	env2.send(t, "180")
	// 年龄必须是整数
	assert.Equal(t, constant.MsgReAskAge, env2.send(t, "30.5"))
	assert.Equal(t, session.StepAskAge, env2.step(t))
}

func TestManualPathCreatesProfile(t *testing.T) {
	env := newTestEnv()
	env.send(t, "hi")
	env.send(t, "Alice")
	env.send(t, "yes")
	env.send(t, "2200")
	reply := env.send(t, "150")

	assert.Equal(t, fmt.Sprintf(constant.MsgRegistrationDone, "Alice", "2200", "150"), reply)
	assert.Len(t, env.profileRepo.created, 1)
	assert.Equal(t, "Alice", env.profileRepo.created[0].Name)
	assert.Equal(t, float64(2200), env.profileRepo.created[0].CaloriesTarget)
	assert.Equal(t, float64(150), env.profileRepo.created[0].ProteinTarget)
	assert.Equal(t, session.Step(""), env.step(t))

	// 注册完成后普通消息直接进主模式，不会再触发注册
	reply = env.send(t, "I ate an apple")
	assert.Equal(t, "dispatched", reply)
	assert.Equal(t, []string{"I ate an apple"}, env.dispatcher.calls)
	assert.Len(t, env.profileRepo.created, 1)
}

func TestEstimatedPathUsesEstimator(t *testing.T) {
	env := newTestEnv()
	env.send(t, "hi")
	env.send(t, "Bob")
	env.send(t, "no")
	env.send(t, "80")
	env.send(t, "180")
	env.send(t, "30")
	reply := env.send(t, "I want to bulk up")

	assert.Equal(t, 1, env.estimator.calls)
	assert.Contains(t, reply, "2500")
	assert.Contains(t, reply, "140")
	assert.Len(t, env.profileRepo.created, 1)
	assert.Equal(t, float64(2500), env.profileRepo.created[0].CaloriesTarget)
}

func TestEstimatedPathFallsBackOnEstimatorFailure(t *testing.T) {
	env := newTestEnv()
	env.estimator.err = errors.New("model unavailable")

	env.send(t, "hi")
	env.send(t, "Bob")
	env.send(t, "no")
	env.send(t, "80")
	env.send(t, "180")
	env.send(t, "30")
	env.send(t, "maintain")

	// 兜底公式：80*30 = 2400 kcal, 80*1.8 = 144 g
	assert.Len(t, env.profileRepo.created, 1)
	assert.Equal(t, float64(2400), env.profileRepo.created[0].CaloriesTarget)
	assert.Equal(t, float64(144), env.profileRepo.created[0].ProteinTarget)
}

func TestNegativeWeightIsAccepted(t *testing.T) {
	env := newTestEnv()
	env.send(t, "hi")
	env.send(t, "Bob")
	env.send(t, "no")

	// 不做取值范围校验
	reply := env.send(t, "-80")
	assert.Equal(t, constant.MsgAskHeight, reply)
	assert.Equal(t, session.StepAskHeight, env.step(t))
}

func TestStartResetsUnconditionally(t *testing.T) {
	env := newTestEnv()
	env.send(t, "hi")
	env.send(t, "Alice")
	env.send(t, "yes")
	env.send(t, "2200")

	// 注册走到一半 /start，丢掉已答的内容从头再来
	reply, err := env.engine.HandleStart(context.Background(), "42")
	assert.Nil(t, err)
	assert.Equal(t, constant.MsgAskName, reply)

	sess, _ := env.store.Get(context.Background(), "42")
	assert.Equal(t, session.StepAskName, sess.Step)
	assert.Equal(t, "", sess.Data.Name)
	assert.Equal(t, float64(0), sess.Data.CaloriesTarget)
}

func TestStartWithProfileGoesToMain(t *testing.T) {
	env := newTestEnv()
	env.profileRepo.profiles["42"] = &entity.Profile{UserID: "42", Name: "Alice"}

	reply, err := env.engine.HandleStart(context.Background(), "42")
	assert.Nil(t, err)
	assert.Equal(t, fmt.Sprintf(constant.MsgWelcomeBack, "Alice"), reply)
	assert.Equal(t, session.Step(""), env.step(t))
}

func TestMealPhotoFromRegisteredUserAppends(t *testing.T) {
	env := newTestEnv()
	env.profileRepo.profiles["42"] = &entity.Profile{UserID: "42", Name: "Alice"}

	reply, err := env.engine.HandleMealPhoto(context.Background(), "42", &model.MealPayload{Description: "pizza"})
	assert.Nil(t, err)
	assert.Equal(t, "dispatched", reply)
	assert.Equal(t, []string{"photo:pizza"}, env.dispatcher.calls)
}

func TestMealPhotoDuringRegistrationRepeatsPrompt(t *testing.T) {
	env := newTestEnv()
	env.send(t, "hi")
	env.send(t, "Alice")

	reply, err := env.engine.HandleMealPhoto(context.Background(), "42", &model.MealPayload{Description: "pizza"})
	assert.Nil(t, err)
	assert.Equal(t, fmt.Sprintf(constant.MsgAskKnowTargets, "Alice"), reply)
	assert.Empty(t, env.dispatcher.calls)
	assert.Equal(t, session.StepAskKnowTargets, env.step(t))
}

func TestMealPhotoFromUnregisteredUserStartsRegistration(t *testing.T) {
	env := newTestEnv()

	reply, err := env.engine.HandleMealPhoto(context.Background(), "42", &model.MealPayload{Description: "pizza"})
	assert.Nil(t, err)
	assert.Equal(t, constant.MsgAskName, reply)
	assert.Equal(t, session.StepAskName, env.step(t))
}

type ctxKey string

func TestProfileLookupUsesCallerContext(t *testing.T) {
	env := newTestEnv()
	ctx := context.WithValue(context.Background(), ctxKey("trace"), "abc")

	_, err := env.engine.HandleText(ctx, "42", "hello")
	assert.Nil(t, err)
	assert.NotEmpty(t, env.factory.sessionCtxs)
	for _, got := range env.factory.sessionCtxs {
		assert.Equal(t, "abc", got.Value(ctxKey("trace")))
	}
}

func TestNormalizeGoal(t *testing.T) {
	assert.Equal(t, constant.GoalGainMuscle, NormalizeGoal("I want to GAIN some muscle"))
	assert.Equal(t, constant.GoalGainMuscle, NormalizeGoal("bulking season"))
	assert.Equal(t, constant.GoalLoseFat, NormalizeGoal("lose weight"))
	assert.Equal(t, constant.GoalLoseFat, NormalizeGoal("cutting"))
	assert.Equal(t, constant.GoalMaintain, NormalizeGoal("just stay healthy"))
	assert.Equal(t, constant.GoalMaintain, NormalizeGoal(""))
}
