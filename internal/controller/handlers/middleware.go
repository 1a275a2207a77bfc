package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession проверяет что пользователь вошёл в систему
// Возвращает session и true если OK, nil и false если нет
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	session, err := h.sessions.Get(ctx, update.Message.From.ID)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return nil, false
	}
	return session, true
}

// replyError отвечает текстом ошибки сервиса. Просроченная сессия удаляется,
// чтобы следующий запрос сразу попросил /login.
func (h *Handlers) replyError(ctx context.Context, b *bot.Bot, update *models.Update, err error) {
	telegramID := update.Message.From.ID

	switch {
	case errors.Is(err, service.ErrSessionExpired):
		if _, logoutErr := h.sessions.Logout(ctx, telegramID); logoutErr != nil {
			h.logger.Error("Failed to drop expired session", zap.Int64("telegram_id", telegramID), zap.Error(logoutErr))
		}
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrInvalidCredentials):
		// ожидаемые ответы, в лог не пишем
	default:
		h.logger.Error("Command failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("text", commandName(update.Message.Text)),
			zap.Error(err),
		)
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.ErrorText(err))
}

// sendMessage отправляет HTML сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	common.SendText(ctx, b, chatID, text, h.logger)
}

// commandName возвращает команду без аргументов, чтобы не писать в лог пароли
func commandName(text string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	return name
}

// commandArgs возвращает текст после команды
func commandArgs(text string) string {
	_, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(args)
}
