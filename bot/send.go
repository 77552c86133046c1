package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/telegram"
)

// send 转义后按行边界分片发送，每片一条消息
// MarkdownV2 发送失败时退回纯文本重发一次
func (b *Bot) send(chatID int64, text string) {
	if text == constant.EmptyString {
		return
	}

	escaped := telegram.EscapeMarkdownV2(text)
	for _, chunk := range telegram.ChunkMessage(escaped, telegram.DefaultChunkLen) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		if _, err := b.api.Send(msg); err != nil {
			log.Errorf("Failed to send markdown message to chat %d: %v", chatID, err)
			plain := tgbotapi.NewMessage(chatID, chunk)
			if _, err := b.api.Send(plain); err != nil {
				log.Errorf("Failed to send plain message to chat %d: %v", chatID, err)
			}
		}
	}
}

// sendApology 按失败点选一条固定道歉文案
// 结构化错误不出用户边界，用户只看到自由文本
func (b *Bot) sendApology(chatID int64, err *model.Error) {
	b.send(chatID, apologyFor(err))
}

func apologyFor(err *model.Error) string {
	switch err.Code {
	case model.ErrorLLM:
		return constant.MsgApologyLLM
	case model.ErrorTranscribe:
		return constant.MsgApologyTranscribe
	case model.ErrorAnalyze:
		return constant.MsgApologyAnalyze
	case model.ErrorDownload:
		return constant.MsgApologyDownload
	case model.ErrorProfileNotFound:
		return constant.MsgReportNoProfile
	default:
		return constant.MsgApologyStore
	}
}
