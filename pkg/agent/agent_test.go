package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
)

type fakeChatClient struct {
	response string
	err      error
	lastMsgs []openai.ChatCompletionMessage
}

func (f *fakeChatClient) PostChatCompletionsNonStreamContent(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	f.lastMsgs = messages
	return f.response, f.err
}

type fakeVisionClient struct {
	response string
	err      error
}

func (f *fakeVisionClient) DescribeImage(ctx context.Context, imagePath, prompt string) (string, error) {
	return f.response, f.err
}

func TestClassifyValidAction(t *testing.T) {
	client := &fakeChatClient{response: `{"action":"get_report","reply":"","report_date":"today"}`}
	classifier := NewClassifier(client)

	result, err := classifier.Classify(context.Background(), "how am I doing?", "Name: Alice.")
	require.NoError(t, err)
	assert.Equal(t, model.ActionGetReport, result.Action)

	// 档案摘要和原始消息都进了用户提示词
	require.Len(t, client.lastMsgs, 2)
	assert.Contains(t, client.lastMsgs[1].Content, "Name: Alice.")
	assert.Contains(t, client.lastMsgs[1].Content, "how am I doing?")
}

func TestClassifyMalformedOutputFallsBackToChat(t *testing.T) {
	for _, response := range []string{
		"I think you ate something nice!",
		`{"action":"unknown_action","reply":"hm"}`,
		"",
	} {
		classifier := NewClassifier(&fakeChatClient{response: response})

		result, err := classifier.Classify(context.Background(), "hello", "")
		require.NoError(t, err, "response %q", response)
		assert.Equal(t, model.ActionChat, result.Action)
		assert.Equal(t, constant.MsgGenericChatReply, result.Reply)
	}
}

func TestClassifyTransportErrorIsReturned(t *testing.T) {
	classifier := NewClassifier(&fakeChatClient{err: errors.New("connection refused")})

	_, err := classifier.Classify(context.Background(), "hello", "")
	assert.Error(t, err)
}

func TestEstimateParsesTargets(t *testing.T) {
	estimator := NewEstimator(&fakeChatClient{response: "```json\n{\"calories_target\":2600,\"protein_target\":150}\n```"})

	calories, protein, err := estimator.Estimate(context.Background(), 80, 180, 30, constant.GoalGainMuscle)
	require.NoError(t, err)
	assert.Equal(t, float64(2600), calories)
	assert.Equal(t, float64(150), protein)
}

func TestEstimateRejectsNonPositiveTargets(t *testing.T) {
	estimator := NewEstimator(&fakeChatClient{response: `{"calories_target":0,"protein_target":150}`})

	_, _, err := estimator.Estimate(context.Background(), 80, 180, 30, constant.GoalMaintain)
	assert.Error(t, err)
}

func TestEstimateRejectsGarbage(t *testing.T) {
	estimator := NewEstimator(&fakeChatClient{response: "around 2600 calories should do"})

	_, _, err := estimator.Estimate(context.Background(), 80, 180, 30, constant.GoalMaintain)
	assert.Error(t, err)
}

func TestFallbackTargets(t *testing.T) {
	calories, protein := FallbackTargets(80)
	assert.Equal(t, float64(2400), calories)
	assert.Equal(t, float64(144), protein)
}

func TestAnalyzeMealPhoto(t *testing.T) {
	analyzer := NewPhotoAnalyzer(&fakeVisionClient{
		response: `{"description":"chicken with rice","calories":550,"proteins":42,"carbs":60,"fats":12}`,
	})

	meal, err := analyzer.AnalyzeMealPhoto(context.Background(), "/tmp/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "chicken with rice", meal.Description)
	assert.Equal(t, float64(550), meal.Calories)
	assert.Equal(t, float64(42), meal.Proteins)
}

func TestAnalyzeMealPhotoPartialFieldsDefaultToZero(t *testing.T) {
	analyzer := NewPhotoAnalyzer(&fakeVisionClient{
		response: `{"calories":"lots","proteins":30}`,
	})

	meal, err := analyzer.AnalyzeMealPhoto(context.Background(), "/tmp/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "meal from photo", meal.Description)
	assert.Equal(t, float64(0), meal.Calories)
	assert.Equal(t, float64(30), meal.Proteins)
	assert.Equal(t, float64(0), meal.Carbs)
}

func TestAnalyzeMealPhotoUnparsableFails(t *testing.T) {
	analyzer := NewPhotoAnalyzer(&fakeVisionClient{response: "a lovely plate of food"})

	_, err := analyzer.AnalyzeMealPhoto(context.Background(), "/tmp/photo.jpg")
	assert.Error(t, err)
}
