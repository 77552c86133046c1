package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/constant"
)

// handleVoice 语音转写后和打字消息走同一条路径
// 下载失败或转写为空都在这里短路，不碰任何状态
func (b *Bot) handleVoice(ctx context.Context, chatID int64, userID string, msg *tgbotapi.Message) {
	localPath, ok := b.downloadFile(ctx, chatID, msg.Voice.FileID,
		fmt.Sprintf("voice_%d_%d_%s.ogg", chatID, msg.MessageID, uuid.NewString()))
	if !ok {
		return
	}
	defer removeFile(localPath)

	text, err := b.transcriber.Transcribe(ctx, localPath)
	if err != nil {
		log.Errorf("Voice transcription failed for user %s: %v", userID, err)
		b.send(chatID, constant.MsgApologyTranscribe)
		return
	}
	if text == constant.EmptyString {
		b.send(chatID, constant.MsgApologyTranscribe)
		return
	}

	reply, modelErr := b.engine.HandleText(ctx, userID, text)
	if modelErr != nil {
		b.sendApology(chatID, modelErr)
		return
	}
	b.send(chatID, reply)
}

// handlePhoto 取最高分辨率的一张下载后做宏量分析
func (b *Bot) handlePhoto(ctx context.Context, chatID int64, userID string, msg *tgbotapi.Message) {
	best := msg.Photo[len(msg.Photo)-1]

	localPath, ok := b.downloadFile(ctx, chatID, best.FileID,
		fmt.Sprintf("photo_%d_%d_%s.jpg", chatID, msg.MessageID, uuid.NewString()))
	if !ok {
		return
	}
	defer removeFile(localPath)

	meal, err := b.photoAnalyzer.AnalyzeMealPhoto(ctx, localPath)
	if err != nil {
		log.Errorf("Photo analysis failed for user %s: %v", userID, err)
		b.send(chatID, constant.MsgApologyAnalyze)
		return
	}

	reply, modelErr := b.engine.HandleMealPhoto(ctx, userID, meal)
	if modelErr != nil {
		b.sendApology(chatID, modelErr)
		return
	}
	b.send(chatID, reply)
}

// downloadFile 把 Telegram 文件拉到本地，失败时已给用户发过道歉
func (b *Bot) downloadFile(ctx context.Context, chatID int64, fileID, fileName string) (string, bool) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		log.Errorf("Failed to resolve telegram file %s: %v", fileID, err)
		b.send(chatID, constant.MsgApologyDownload)
		return constant.EmptyString, false
	}

	localPath := filepath.Join(b.downloadDir, fileName)
	if err := b.downloader.DownloadFileWithContext(ctx, fileURL, localPath); err != nil {
		log.Errorf("Failed to download telegram file %s: %v", fileID, err)
		b.send(chatID, constant.MsgApologyDownload)
		return constant.EmptyString, false
	}

	return localPath, true
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil {
		log.Warnf("Failed to remove temp file %s: %v", path, err)
	}
}
