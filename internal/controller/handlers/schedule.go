package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/Freeeeeet/classroom_bot/internal/controller/screens"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// dateArgLayouts форматы даты в аргументе команды: /week 15/01/2024
var dateArgLayouts = []string{"02/01/2006", "2/1/2006", "2006-01-02"}

// dateArg разбирает дату из аргумента команды, без аргумента - сегодня
func (h *Handlers) dateArg(text string) (time.Time, bool) {
	now := h.schedules.Now()
	arg := commandArgs(text)
	if arg == "" {
		return now, true
	}
	for _, layout := range dateArgLayouts {
		if t, err := time.ParseInLocation(layout, arg, now.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HandleWeek обрабатывает команду /week [дата]
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	date, ok := h.dateArg(update.Message.Text)
	if !ok {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Ngày không hợp lệ. Ví dụ: /week 15/01/2024")
		return
	}

	view, err := h.schedules.Week(ctx, session, date)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	common.SendScreen(ctx, b, update.Message.Chat.ID, screens.Week(view, false, h.schedules.Now()), h.logger)
}

// HandleMonth обрабатывает команду /month [дата]
func (h *Handlers) HandleMonth(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	date, ok := h.dateArg(update.Message.Text)
	if !ok {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Ngày không hợp lệ. Ví dụ: /month 01/02/2024")
		return
	}

	view, err := h.schedules.Month(ctx, session, date)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	common.SendScreen(ctx, b, update.Message.Chat.ID, screens.Month(view, date, h.schedules.Now()), h.logger)
}

// HandleToday обрабатывает команду /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	now := h.schedules.Now()
	view, err := h.schedules.Today(ctx, session, now)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	common.SendScreen(ctx, b, update.Message.Chat.ID, screens.Today(view, now), h.logger)
}

// HandleTeaching обрабатывает команду /teaching - расписание преподавателя
func (h *Handlers) HandleTeaching(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	date, ok := h.dateArg(update.Message.Text)
	if !ok {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Ngày không hợp lệ. Ví dụ: /teaching 15/01/2024")
		return
	}

	view, err := h.schedules.Teaching(ctx, session, date)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	common.SendScreen(ctx, b, update.Message.Chat.ID, screens.Week(view, true, h.schedules.Now()), h.logger)
}

// HandleICS обрабатывает команду /ics - выгрузка расписания в календарь
func (h *Handlers) HandleICS(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	entries, err := h.schedules.Entries(ctx, session)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	err = common.SendCalendarFile(ctx, b, update.Message.Chat.ID, entries, h.schedules.WeekStart(), h.schedules.Now())
	if err != nil {
		h.logger.Error("Failed to send calendar file",
			zap.Int64("telegram_id", session.TelegramID),
			zap.Error(err),
		)
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Không thể xuất lịch. Vui lòng thử lại sau.")
	}
}
