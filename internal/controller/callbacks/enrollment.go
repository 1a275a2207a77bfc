package callbacks

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/classroom_bot/internal/controller/callbackdata"
	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/screens"
	"github.com/Freeeeeet/classroom_bot/internal/controller/state"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// catalogState разбирает фильтры каталога: cat:<предмет>:<день>:<страница>
func catalogState(data callbackdata.Data) (screens.CatalogState, error) {
	subject, err := data.Int(0)
	if err != nil {
		return screens.CatalogState{}, err
	}
	day, err := data.Int(1)
	if err != nil {
		return screens.CatalogState{}, err
	}
	page, err := data.Int(2)
	if err != nil {
		return screens.CatalogState{}, err
	}
	if day < screens.All || day > 6 {
		return screens.CatalogState{}, fmt.Errorf("day %d: %w", day, callbackdata.ErrInvalidFormat)
	}
	return screens.CatalogState{Subject: subject, Day: day, Page: page}, nil
}

// handleCatalog показывает каталог с выбранными фильтрами
func (h *Handler) handleCatalog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data) {
	catalog, err := catalogState(data)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	view, err := h.enrollments.Catalog(ctx, session, h.catalogQuery(callback.From.ID, catalog))
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	common.EditScreen(ctx, b, common.CallbackMessage(callback), screens.Catalog(view, catalog), h.logger)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// catalogQuery фильтры кнопки вместе с поиском из последней команды /classes
func (h *Handler) catalogQuery(telegramID int64, catalog screens.CatalogState) service.CatalogQuery {
	query, _ := h.stateManager.GetData(telegramID, state.KeyCatalogQuery)
	return catalog.Filter(query)
}

// handleEnroll показывает подтверждение записи на класс
func (h *Handler) handleEnroll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data) {
	classID, err := data.Arg(0)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	item, err := h.enrollments.Class(ctx, session, classID)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	common.EditScreen(ctx, b, common.CallbackMessage(callback), screens.EnrollConfirm(item), h.logger)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// handleEnrollConfirm записывает студента на класс
func (h *Handler) handleEnrollConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data) {
	classID, err := data.Arg(0)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	if err := h.enrollments.Enroll(ctx, session, classID); err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Đăng ký thành công")

	// после записи показываем обновлённый список своих классов
	h.showMyClasses(ctx, b, callback, session)
}

// handleMyClasses возвращает к списку своих классов
func (h *Handler) handleMyClasses(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.showMyClasses(ctx, b, callback, session)
}

func (h *Handler) showMyClasses(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, session *model.Session) {
	msg := common.CallbackMessage(callback)

	classes, err := h.enrollments.Enrolled(ctx, session)
	if err != nil {
		common.SendText(ctx, b, msg.Chat.ID, formatting.ErrorText(err), h.logger)
		return
	}

	common.EditScreen(ctx, b, msg, screens.Enrolled(classes, h.enrollments.Cutoff(), h.schedules.Now()), h.logger)
}

// handleCancel показывает подтверждение отмены с дедлайном
func (h *Handler) handleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data) {
	classID, err := data.Arg(0)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	cancelState, err := h.enrollments.CancelState(ctx, session, classID)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	common.EditScreen(ctx, b, common.CallbackMessage(callback), screens.CancelConfirm(cancelState, h.schedules.Now()), h.logger)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// handleCancelConfirm отменяет запись. Дедлайн проверяется заново:
// между показом кнопки и нажатием он мог пройти.
func (h *Handler) handleCancelConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, data callbackdata.Data) {
	classID, err := data.Arg(0)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return
	}

	session, ok := h.session(ctx, b, callback)
	if !ok {
		return
	}

	err = h.enrollments.Cancel(ctx, session, classID)
	switch {
	case errors.Is(err, service.ErrCancelWindowClosed), errors.Is(err, service.ErrNotEnrolled):
		h.fail(ctx, b, callback, err)
		h.showMyClasses(ctx, b, callback, session)
		return
	case err != nil:
		h.fail(ctx, b, callback, err)
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Đã hủy đăng ký")
	h.showMyClasses(ctx, b, callback, session)
}
