package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/state"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleLogin начинает диалог входа: email, затем пароль
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	session, err := h.sessions.Get(ctx, telegramID)
	if err == nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
			"✅ Bạn đã đăng nhập với %s.\n\nĐăng nhập tài khoản khác: /logout rồi /login",
			html.EscapeString(session.Email),
		))
		return
	}
	if !errors.Is(err, service.ErrNotLoggedIn) {
		h.replyError(ctx, b, update, err)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginEmail)

	h.logger.Info("Login dialog started", zap.Int64("telegram_id", telegramID))

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 Đăng nhập\n\n"+
			"Bước 1/2: Nhập email tài khoản của trung tâm.\n\n"+
			"Hủy: /cancel")
}

// handleLoginEmailStep обрабатывает ввод email
func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.ToLower(strings.TrimSpace(update.Message.Text))

	if err := h.validate.Var(email, "required,email"); err != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"❌ Email không hợp lệ.\n\nVui lòng nhập lại (ví dụ: hocvien@gmail.com) hoặc /cancel:")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyEmail, email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"✅ Email: %s\n\n"+
			"Bước 2/2: Nhập mật khẩu.\n"+
			"Tin nhắn chứa mật khẩu sẽ được xóa ngay sau khi đọc.\n\n"+
			"Hủy: /cancel",
		html.EscapeString(email),
	))
}

// handleLoginPasswordStep обрабатывает ввод пароля и входит в систему
func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// пароль не должен оставаться в истории чата
	common.DeleteMessage(ctx, b, chatID, update.Message.ID, h.logger)

	email, ok := h.stateManager.GetData(telegramID, state.KeyEmail)
	h.stateManager.ClearState(telegramID)
	if !ok {
		h.sendMessage(ctx, b, chatID, "⌛ Phiên đăng nhập đã hết hạn. Vui lòng /login lại.")
		return
	}

	session, err := h.sessions.Login(ctx, telegramID, chatID, email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.sendMessage(ctx, b, chatID, formatting.ErrorText(err)+"\n\nThử lại: /login")
			return
		}
		h.replyError(ctx, b, update, err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"🎉 Đăng nhập thành công!\nXin chào <b>%s</b> (%s).\n\n%s",
		html.EscapeString(session.Name),
		formatting.RoleName(session.Role),
		helpText(session),
	))
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)

	removed, err := h.sessions.Logout(ctx, telegramID)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}
	if !removed {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Bạn chưa đăng nhập. Đăng nhập: /login")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Đã đăng xuất. Nhắc lịch cũng đã tắt.\n\nĐăng nhập lại: /login")
}
