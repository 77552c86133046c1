// Package media 语音转写和图片识别客户端
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/file"
)

const (
	clientNameMedia = "media_model"
)

// Client 媒体模型客户端，语音走转写接口，图片走视觉对话接口
type Client struct {
	config *Config
	client *openai.Client
}

// NewClientWithParams 使用参数结构体创建客户端
func NewClientWithParams(params ClientParams, opts ...Option) *Client {
	config := DefaultConfig()
	config.BaseURL = params.BaseURL
	config.APIKey = params.APIKey

	for _, opt := range opts {
		opt(config)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Client{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Transcribe 转写本地音频文件
// 返回空串表示模型没有听懂，调用方据此决定话术
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.config.TranscribeModel,
		FilePath: audioPath,
	})
	if err != nil {
		log.Errorf("%s transcription error: %v", clientNameMedia, err)
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}

// DescribeImage 把本地图片连同提示词发给视觉模型，返回文本回答
func (c *Client) DescribeImage(ctx context.Context, imagePath, prompt string) (string, error) {
	imageBytes, err := file.GetBytes(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	dataURL := fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString(imageBytes))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.VisionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Errorf("%s vision completion error: %v", clientNameMedia, err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		log.Errorf("%s vision completion response has no choices", clientNameMedia)
		return "", fmt.Errorf("vision completion response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
