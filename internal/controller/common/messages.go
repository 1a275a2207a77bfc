// Package common функции отправки сообщений, общие для команд и callback handlers
package common

import (
	"bytes"
	"context"
	"strings"

	"github.com/Freeeeeet/classroom_bot/internal/controller/screens"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// SendText отправляет HTML сообщение и логирует если не удалось
func SendText(ctx context.Context, b *bot.Bot, chatID int64, text string, logger *zap.Logger) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// SendScreen отправляет экран новым сообщением
func SendScreen(ctx context.Context, b *bot.Bot, chatID int64, screen screens.Screen, logger *zap.Logger) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        screen.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: screen.Keyboard,
	})
	if err != nil {
		logger.Error("Failed to send screen",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// EditScreen заменяет сообщение с кнопками новым экраном.
// Сообщение с фото редактировать нельзя, тогда экран уходит новым сообщением.
func EditScreen(ctx context.Context, b *bot.Bot, msg *models.Message, screen screens.Screen, logger *zap.Logger) {
	if len(msg.Photo) > 0 || msg.Document != nil {
		SendScreen(ctx, b, msg.Chat.ID, screen, logger)
		return
	}

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        screen.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: screen.Keyboard,
	})
	// повторное нажатие той же кнопки
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return
	}
	if err != nil {
		logger.Error("Failed to edit message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err),
		)
	}
}

// SendPhoto отправляет PNG с подписью
func SendPhoto(ctx context.Context, b *bot.Bot, chatID int64, png []byte, caption string) error {
	_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(png)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// SendDocument отправляет файл с подписью
func SendDocument(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, caption string) error {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:    chatID,
		Document:  &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// DeleteMessage удаляет сообщение (например, с паролем)
func DeleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int, logger *zap.Logger) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		logger.Warn("Failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// CallbackMessage извлекает сообщение из callback query
func CallbackMessage(callback *models.CallbackQuery) *models.Message {
	return callback.Message.Message
}
