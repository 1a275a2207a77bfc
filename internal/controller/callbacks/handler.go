package callbacks

import (
	"context"
	"errors"

	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/state"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	sessions     *service.SessionService
	schedules    *service.ScheduleService
	enrollments  *service.EnrollmentService
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	sessions *service.SessionService,
	schedules *service.ScheduleService,
	enrollments *service.EnrollmentService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		sessions:     sessions,
		schedules:    schedules,
		enrollments:  enrollments,
		stateManager: stateManager,
		logger:       logger,
	}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	h.route(ctx, b, callback)
}

// session загружает сессию нажавшего кнопку, при ошибке отвечает alert
func (h *Handler) session(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.Session, bool) {
	session, err := h.sessions.Get(ctx, callback.From.ID)
	if err != nil {
		h.fail(ctx, b, callback, err)
		return nil, false
	}
	return session, true
}

// fail отвечает alert с текстом ошибки. Просроченная сессия удаляется.
func (h *Handler) fail(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, err error) {
	switch {
	case errors.Is(err, service.ErrSessionExpired):
		if _, logoutErr := h.sessions.Logout(ctx, callback.From.ID); logoutErr != nil {
			h.logger.Error("Failed to drop expired session", zap.Int64("telegram_id", callback.From.ID), zap.Error(logoutErr))
		}
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrCancelWindowClosed), errors.Is(err, service.ErrNotEnrolled):
		// ожидаемые ответы, в лог не пишем
	default:
		h.logger.Error("Callback failed",
			zap.String("data", callback.Data),
			zap.Int64("user_id", callback.From.ID),
			zap.Error(err),
		)
	}

	common.AnswerCallbackAlert(ctx, b, callback.ID, stripHTML(formatting.ErrorText(err)))
}
