package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
)

// Estimator 每日目标估算器
type Estimator struct {
	llmClient ChatClient
}

// NewEstimator 创建估算器
func NewEstimator(llmClient ChatClient) *Estimator {
	return &Estimator{llmClient: llmClient}
}

type estimateResult struct {
	CaloriesTarget float64 `json:"calories_target"`
	ProteinTarget  float64 `json:"protein_target"`
}

// Estimate 由体征和目标推荐每日卡路里/蛋白质目标
// 任何失败（调用、解析、非正值）都返回错误，由调用方走线性兜底公式
func (e *Estimator) Estimate(ctx context.Context, weightKg, heightCm float64, ageYears int, goal string) (float64, float64, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: PromptEstimatorSystem,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(PromptEstimatorUserTemplate, weightKg, heightCm, ageYears, goal),
		},
	}

	raw, err := e.llmClient.PostChatCompletionsNonStreamContent(ctx, messages)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to estimate targets: %w", err)
	}

	var result estimateResult
	if err := json.Unmarshal([]byte(model.TrimJSONFences(raw)), &result); err != nil {
		return 0, 0, fmt.Errorf("failed to parse estimator JSON: %w", err)
	}

	if result.CaloriesTarget <= 0 || result.ProteinTarget <= 0 {
		return 0, 0, fmt.Errorf("estimator returned non-positive targets: %+v", result)
	}

	return result.CaloriesTarget, result.ProteinTarget, nil
}

// FallbackTargets 线性兜底公式，估算器失败时使用
func FallbackTargets(weightKg float64) (float64, float64) {
	log.Infof("Using fallback target formula for weight %.1f kg", weightKg)
	return weightKg * constant.FallbackCaloriesPerKg, weightKg * constant.FallbackProteinPerKg
}
