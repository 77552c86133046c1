// Package agent 封装所有直接和 LLM 对话的组件
// 每个组件 = 提示词 + 调用 + 结果解析，解析失败的退化策略由各自定义
package agent

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// ChatClient 对话模型调用接口，由 pkg/clients/llm_model 实现
type ChatClient interface {
	PostChatCompletionsNonStreamContent(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// VisionClient 视觉模型调用接口，由 pkg/clients/media 实现
type VisionClient interface {
	DescribeImage(ctx context.Context, imagePath, prompt string) (string, error)
}
