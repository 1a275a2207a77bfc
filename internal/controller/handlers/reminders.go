package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleReminders обрабатывает команду /reminders [on|off]
func (h *Handlers) HandleReminders(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	var enabled bool
	switch strings.ToLower(commandArgs(update.Message.Text)) {
	case "on", "bật", "bat":
		enabled = true
	case "off", "tắt", "tat":
		enabled = false
	case "":
		status := "đang tắt"
		if session.RemindersEnabled {
			status = "đang bật"
		}
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"🔔 Nhắc lịch hằng ngày "+status+".\n\nBật: /reminders on\nTắt: /reminders off")
		return
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Dùng: /reminders on hoặc /reminders off")
		return
	}

	if err := h.sessions.SetReminders(ctx, session.TelegramID, enabled); err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	if enabled {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🔔 Đã bật nhắc lịch. Mỗi sáng bot sẽ gửi lịch học trong ngày.")
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "🔕 Đã tắt nhắc lịch.")
}
