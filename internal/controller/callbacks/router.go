package callbacks

import (
	"context"
	"html"
	"strings"

	"github.com/Freeeeeet/classroom_bot/internal/controller/callbackdata"
	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// route распределяет callback query по соответствующим обработчикам
func (h *Handler) route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if common.CallbackMessage(callback) == nil {
		// сообщение слишком старое, Telegram его уже не отдаёт
		common.AnswerCallbackAlert(ctx, b, callback.ID, "⌛ Tin nhắn đã cũ. Vui lòng gửi lại lệnh.")
		return
	}

	data, err := callbackdata.Parse(callback.Data)
	if err != nil {
		h.logger.Warn("Malformed callback data", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Dữ liệu không hợp lệ")
		return
	}

	switch data.Action {
	case callbackdata.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Календарь =====
	case callbackdata.Week:
		h.handleWeek(ctx, b, callback, data, false)
	case callbackdata.Teaching:
		h.handleWeek(ctx, b, callback, data, true)
	case callbackdata.Month:
		h.handleMonth(ctx, b, callback, data)
	case callbackdata.WeekImage:
		h.handleWeekImage(ctx, b, callback, data)
	case callbackdata.ICS:
		h.handleICS(ctx, b, callback)

	// ===== Запись на классы =====
	case callbackdata.Catalog:
		h.handleCatalog(ctx, b, callback, data)
	case callbackdata.Enroll:
		h.handleEnroll(ctx, b, callback, data)
	case callbackdata.EnrollConfirm:
		h.handleEnrollConfirm(ctx, b, callback, data)
	case callbackdata.MyClasses:
		h.handleMyClasses(ctx, b, callback)
	case callbackdata.Cancel:
		h.handleCancel(ctx, b, callback, data)
	case callbackdata.CancelConfirm:
		h.handleCancelConfirm(ctx, b, callback, data)

	default:
		h.logger.Warn("Unknown callback action", zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Nút này không còn được hỗ trợ")
	}
}

// stripHTML убирает теги из текста ошибки: alert показывает текст как есть
func stripHTML(s string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return html.UnescapeString(sb.String())
}
