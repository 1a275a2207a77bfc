package callbacks

import (
	"context"

	"github.com/Freeeeeet/classroom_bot/internal/controller/callbackdata"
	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/Freeeeeet/classroom_bot/internal/controller/screens"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleWeek переключает неделю. teaching - неделя преподавания
func (h *Handler) handleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data, teaching bool) {
	date, err := data.Date(0, h.schedules.Now().Location())
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	var view *service.CalendarView
	if teaching {
		view, err = h.schedules.Teaching(ctx, session, date)
	} else {
		view, err = h.schedules.Week(ctx, session, date)
	}
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	common.EditScreen(ctx, b, common.CallbackMessage(callback), screens.Week(view, teaching, h.schedules.Now()), h.logger)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// handleMonth переключает месяц
func (h *Handler) handleMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data) {
	date, err := data.Date(0, h.schedules.Now().Location())
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	view, err := h.schedules.Month(ctx, session, date)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	common.EditScreen(ctx, b, common.CallbackMessage(callback), screens.Month(view, date, h.schedules.Now()), h.logger)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// handleWeekImage отправляет картинку недели отдельным сообщением
func (h *Handler) handleWeekImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data) {
	date, err := data.Date(0, h.schedules.Now().Location())
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	view, err := h.schedules.Week(ctx, session, date)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	// картинка рисуется не мгновенно, снимаем "часики" с кнопки сразу
	common.AnswerCallback(ctx, b, callback.ID, "🖼 Đang tạo ảnh...")

	msg := common.CallbackMessage(callback)
	if err := common.SendWeekImage(ctx, b, msg.Chat.ID, view, h.schedules.Now()); err != nil {
		h.logger.Error("Failed to send week image",
			zap.Int64("telegram_id", session.TelegramID),
			zap.Error(err),
		)
		common.SendText(ctx, b, msg.Chat.ID, "❌ Không thể tạo ảnh lịch tuần.", h.logger)
	}
}

// handleICS отправляет файл календаря
func (h *Handler) handleICS(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	entries, err := h.schedules.Entries(ctx, session)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	msg := common.CallbackMessage(callback)
	err = common.SendCalendarFile(ctx, b, msg.Chat.ID, entries, h.schedules.WeekStart(), h.schedules.Now())
	if err != nil {
		h.logger.Error("Failed to send calendar file",
			zap.Int64("telegram_id", session.TelegramID),
			zap.Error(err),
		)
		common.SendText(ctx, b, msg.Chat.ID, "❌ Không thể xuất lịch. Vui lòng thử lại sau.", h.logger)
	}
}
