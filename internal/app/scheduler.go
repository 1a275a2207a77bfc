package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderSource данные для напоминаний (service.SessionService + service.ScheduleService)
type ReminderSource interface {
	ReminderRecipients(ctx context.Context) ([]*model.Session, error)
	Today(ctx context.Context, session *model.Session, now time.Time) (*service.CalendarView, error)
}

// Notifier доставляет напоминание пользователю (controller.Bot)
type Notifier interface {
	SendReminder(ctx context.Context, session *model.Session, view *service.CalendarView) error
	SessionExpired(ctx context.Context, session *model.Session)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	source   ReminderSource
	notifier Notifier
	cron     *cron.Cron
	spec     string
	location *time.Location
	logger   *zap.Logger
}

type reminderSource struct {
	*service.SessionService
	*service.ScheduleService
}

// NewScheduler создаёт планировщик ежедневных напоминаний по cron-выражению spec
func NewScheduler(sessions *service.SessionService, schedules *service.ScheduleService, notifier Notifier, spec string, location *time.Location, logger *zap.Logger) *Scheduler {
	return newScheduler(reminderSource{sessions, schedules}, notifier, spec, location, logger)
}

func newScheduler(source ReminderSource, notifier Notifier, spec string, location *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		source:   source,
		notifier: notifier,
		cron:     cron.New(cron.WithLocation(location)),
		spec:     spec,
		location: location,
		logger:   logger,
	}
}

// Start регистрирует задачу и запускает cron
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.SendReminders(ctx, time.Now().In(s.location))
	})
	if err != nil {
		return fmt.Errorf("schedule reminders %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("Reminder scheduler started",
		zap.String("spec", s.spec),
		zap.String("timezone", s.location.String()),
	)
	return nil
}

// Stop останавливает cron и ждёт завершения текущей рассылки
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler")
	<-s.cron.Stop().Done()
}

// SendReminders рассылает расписание на сегодня всем подписанным пользователям.
// Ошибка одного пользователя не останавливает рассылку.
func (s *Scheduler) SendReminders(ctx context.Context, now time.Time) {
	if ctx.Err() != nil {
		return
	}

	sessions, err := s.source.ReminderRecipients(ctx)
	if err != nil {
		s.logger.Error("Failed to load reminder recipients", zap.Error(err))
		return
	}

	sent := 0
	for _, session := range sessions {
		view, err := s.source.Today(ctx, session, now)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) {
				s.notifier.SessionExpired(ctx, session)
			}
			s.logger.Warn("Failed to build reminder",
				zap.Int64("telegram_id", session.TelegramID),
				zap.Error(err),
			)
			continue
		}

		// пустой день не присылаем
		if len(view.Occurrences) == 0 {
			continue
		}

		if err := s.notifier.SendReminder(ctx, session, view); err != nil {
			s.logger.Warn("Failed to send reminder",
				zap.Int64("telegram_id", session.TelegramID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	s.logger.Info("Reminders sent",
		zap.Int("recipients", len(sessions)),
		zap.Int("sent", sent),
	)
}
