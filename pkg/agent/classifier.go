package agent

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
)

// Classifier 意图分类器
// 对无法解析的模型输出一律退化为 chat，不向调用方抛解析错误
type Classifier struct {
	llmClient ChatClient
}

// NewClassifier 创建分类器
func NewClassifier(llmClient ChatClient) *Classifier {
	return &Classifier{llmClient: llmClient}
}

// Classify 把一条主模式消息分类为四种动作之一
// 传输层失败会原样返回错误；模型输出格式非法时返回 chat 兜底结果
func (c *Classifier) Classify(ctx context.Context, messageText, profileSummary string) (*model.IntentResult, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: PromptClassifierSystem,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(PromptClassifierUserTemplate, profileSummary, messageText),
		},
	}

	raw, err := c.llmClient.PostChatCompletionsNonStreamContent(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to classify message: %w", err)
	}

	result, err := model.ParseIntentResult(raw)
	if err != nil {
		log.Warnf("Failed to parse classifier result, falling back to chat: %v", err)
		return &model.IntentResult{
			Action: model.ActionChat,
			Reply:  constant.MsgGenericChatReply,
		}, nil
	}

	return result, nil
}
