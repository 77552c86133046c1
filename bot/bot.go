// Package bot Telegram 长轮询接入层
// 收消息、路由到会话引擎、把回复转义分片后发回去
package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/clients/httptool"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/file"
	"github.com/has-1997/Telegram-Nutrition-Assistant/service/conversation"
)

const downloadTimeout = 60 * time.Second

// Transcriber 语音转写，由 pkg/clients/media 实现
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// MealPhotoAnalyzer 餐食照片分析，由 pkg/agent 实现
type MealPhotoAnalyzer interface {
	AnalyzeMealPhoto(ctx context.Context, imagePath string) (*model.MealPayload, error)
}

type Params struct {
	Token       string
	PollTimeout int
	DownloadDir string
	Debug       bool
}

type Bot struct {
	api           *tgbotapi.BotAPI
	engine        *conversation.Engine
	transcriber   Transcriber
	photoAnalyzer MealPhotoAnalyzer
	downloader    *httptool.HTTPClient
	downloadDir   string
	pollTimeout   int
}

func New(params Params, engine *conversation.Engine, transcriber Transcriber, photoAnalyzer MealPhotoAnalyzer) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(params.Token)
	if err != nil {
		return nil, err
	}
	api.Debug = params.Debug

	if err := file.EnsureDir(params.DownloadDir); err != nil {
		return nil, err
	}

	log.Infof("Telegram bot authorized as @%s", api.Self.UserName)

	return &Bot{
		api:           api,
		engine:        engine,
		transcriber:   transcriber,
		photoAnalyzer: photoAnalyzer,
		downloader:    httptool.NewHTTPClient("telegram_file", downloadTimeout),
		downloadDir:   params.DownloadDir,
		pollTimeout:   params.PollTimeout,
	}, nil
}

// Start 长轮询收更新，直到 ctx 取消
// 每条更新起一个 goroutine，跨用户并发、同用户靠会话锁串行
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, userID, msg.Command())
		return
	}

	if msg.Voice != nil {
		b.handleVoice(ctx, chatID, userID, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, chatID, userID, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == constant.EmptyString {
		return
	}

	reply, err := b.engine.HandleText(ctx, userID, text)
	if err != nil {
		b.sendApology(chatID, err)
		return
	}
	b.send(chatID, reply)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, userID, command string) {
	switch command {
	case "start":
		reply, err := b.engine.HandleStart(ctx, userID)
		if err != nil {
			b.sendApology(chatID, err)
			return
		}
		b.send(chatID, reply)
	case "help":
		b.send(chatID, constant.MsgHelp)
	default:
		log.Infof("Unknown command /%s from user %s", command, userID)
		b.send(chatID, constant.MsgHelp)
	}
}
