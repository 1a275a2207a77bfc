package handlers

import (
	"context"

	"github.com/Freeeeeet/classroom_bot/internal/controller/common"
	"github.com/Freeeeeet/classroom_bot/internal/controller/screens"
	"github.com/Freeeeeet/classroom_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleClasses обрабатывает команду /classes [поиск] - каталог открытых классов
func (h *Handlers) HandleClasses(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	// поиск запоминаем для кнопок каталога, /classes без аргументов его сбрасывает
	query := commandArgs(update.Message.Text)
	if query == "" {
		h.stateManager.DeleteData(update.Message.From.ID, state.KeyCatalogQuery)
	} else {
		h.stateManager.SetData(update.Message.From.ID, state.KeyCatalogQuery, query)
	}

	catalog := screens.DefaultCatalog()
	view, err := h.enrollments.Catalog(ctx, session, catalog.Filter(query))
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	common.SendScreen(ctx, b, update.Message.Chat.ID, screens.Catalog(view, catalog), h.logger)
}

// HandleMyClasses обрабатывает команду /myclasses - записи студента с возможностью отмены
func (h *Handlers) HandleMyClasses(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	classes, err := h.enrollments.Enrolled(ctx, session)
	if err != nil {
		h.replyError(ctx, b, update, err)
		return
	}

	screen := screens.Enrolled(classes, h.enrollments.Cutoff(), h.schedules.Now())
	common.SendScreen(ctx, b, update.Message.Chat.ID, screen, h.logger)
}
