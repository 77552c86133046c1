package llm_model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

const (
	clientNameChatModel = "chat_model"
)

// ClientChatModel 对话模型客户端
// 显式构造并注入，不再使用包级单例
type ClientChatModel struct {
	config *Config
	client *openai.Client
}

// NewClientWithParams 使用参数结构体创建客户端
// params 包含必填的 BaseURL, APIKey, ModelName
func NewClientWithParams(params ClientParams, opts ...Option) *ClientChatModel {
	config := DefaultConfig()
	config.BaseURL = params.BaseURL
	config.APIKey = params.APIKey
	config.ModelName = params.ModelName

	for _, opt := range opts {
		opt(config)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &ClientChatModel{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// GetConfig 获取当前配置
func (zc *ClientChatModel) GetConfig() *Config {
	return zc.config
}

// @Description 封装非流式调用，直接返回完整结果
// @Param c context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success *openai.ChatCompletionResponse
// @Success error
func (zc *ClientChatModel) PostChatCompletionsNonStream(c context.Context, messages []openai.ChatCompletionMessage) (*openai.ChatCompletionResponse, error) {
	request := openai.ChatCompletionRequest{
		Model:       zc.config.ModelName,
		Messages:    messages,
		MaxTokens:   zc.config.MaxTokens,
		Temperature: zc.config.Temperature,
		Stream:      false,
	}

	// debug 出完整的请求参数，json格式（仅在 debug 级别时序列化）
	if log.GetLevel() == log.DebugLevel {
		requestJson, err := json.MarshalIndent(request, "", "  ")
		if err != nil {
			log.Errorf("%s chat completion request json marshal error: %v", clientNameChatModel, err)
		} else if _, err := fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion request:\n%s\n", clientNameChatModel, string(requestJson)); err != nil {
			log.Warnf("%s failed to write debug output: %v", clientNameChatModel, err)
		}
	}

	response, err := zc.client.CreateChatCompletion(c, request)
	if err != nil {
		log.Errorf("%s chat completion error: %v", clientNameChatModel, err)
		return nil, err
	}

	return &response, nil
}

// @Description 封装非流式调用，只返回响应内容字符串
// @Param c context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success string
// @Success error
func (zc *ClientChatModel) PostChatCompletionsNonStreamContent(c context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	response, err := zc.PostChatCompletionsNonStream(c, messages)
	if err != nil {
		return "", err
	}

	if response == nil {
		log.Errorf("%s chat completion response is nil", clientNameChatModel)
		return "", fmt.Errorf("chat completion response is nil")
	}

	if len(response.Choices) == 0 {
		log.Errorf("%s chat completion response has no choices", clientNameChatModel)
		return "", fmt.Errorf("chat completion response has no choices")
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		log.Warnf("%s chat completion response content is empty", clientNameChatModel)
	}

	return content, nil
}
