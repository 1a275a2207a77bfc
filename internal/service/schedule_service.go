package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/schedule"
	"go.uber.org/zap"
)

// CalendarView занятия в видимом окне календаря
type CalendarView struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Occurrences []model.CalendarOccurrence
	Skipped     int // слоты, которые не удалось разобрать
}

// Days группирует занятия по дате начала (ключ - полночь дня)
func (v *CalendarView) Days() map[time.Time][]model.CalendarOccurrence {
	days := make(map[time.Time][]model.CalendarOccurrence)
	for _, occ := range v.Occurrences {
		key := time.Date(occ.Start.Year(), occ.Start.Month(), occ.Start.Day(), 0, 0, 0, 0, occ.Start.Location())
		days[key] = append(days[key], occ)
	}
	return days
}

type ScheduleService struct {
	backend   Backend
	location  *time.Location
	weekStart time.Weekday
	clock     Clock
	logger    *zap.Logger
}

func NewScheduleService(backend Backend, location *time.Location, weekStart time.Weekday, clock Clock, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		backend:   backend,
		location:  location,
		weekStart: weekStart,
		clock:     clock,
		logger:    logger,
	}
}

// Now текущее время в часовом поясе учебного центра
func (s *ScheduleService) Now() time.Time {
	return s.clock.now(s.location)
}

// WeekStart первый день недели в календаре
func (s *ScheduleService) WeekStart() time.Weekday {
	return s.weekStart
}

// Entries возвращает правила расписания пользователя:
// для студента - классы, на которые он записан, для остальных - расписание преподавания
func (s *ScheduleService) Entries(ctx context.Context, session *model.Session) ([]model.ScheduleEntry, error) {
	if session.IsStudent() {
		entries, err := s.backend.MySchedule(ctx, session.Token, session.UserID)
		if err != nil {
			return nil, backendError("load student schedule", err)
		}
		return entries, nil
	}

	entries, err := s.backend.TeachingSchedule(ctx, session.Token)
	if err != nil {
		return nil, backendError("load teaching schedule", err)
	}
	return entries, nil
}

// Week возвращает занятия недели, содержащей date
func (s *ScheduleService) Week(ctx context.Context, session *model.Session, date time.Time) (*CalendarView, error) {
	start, end := schedule.WeekWindow(date.In(s.location), s.weekStart)
	return s.window(ctx, session, start, end)
}

// Month возвращает занятия месячного вида, содержащего date
func (s *ScheduleService) Month(ctx context.Context, session *model.Session, date time.Time) (*CalendarView, error) {
	start, end := schedule.MonthWindow(date.In(s.location), s.weekStart)
	return s.window(ctx, session, start, end)
}

// Today возвращает занятия дня now
func (s *ScheduleService) Today(ctx context.Context, session *model.Session, now time.Time) (*CalendarView, error) {
	start, end := schedule.DayWindow(now.In(s.location))
	return s.window(ctx, session, start, end)
}

// Teaching возвращает неделю расписания преподавания (для преподавателей и админов)
func (s *ScheduleService) Teaching(ctx context.Context, session *model.Session, date time.Time) (*CalendarView, error) {
	if err := RequireRole(session, model.RoleTeacher, model.RoleAdmin); err != nil {
		return nil, err
	}

	entries, err := s.backend.TeachingSchedule(ctx, session.Token)
	if err != nil {
		return nil, backendError("load teaching schedule", err)
	}

	start, end := schedule.WeekWindow(date.In(s.location), s.weekStart)
	return s.expand(entries, start, end)
}

func (s *ScheduleService) window(ctx context.Context, session *model.Session, start, end time.Time) (*CalendarView, error) {
	entries, err := s.Entries(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.expand(entries, start, end)
}

func (s *ScheduleService) expand(entries []model.ScheduleEntry, start, end time.Time) (*CalendarView, error) {
	skipped := schedule.Validate(entries)
	for _, se := range skipped {
		s.logger.Warn("Skipping unparseable time slot",
			zap.String("class", se.ClassName),
			zap.String("day", se.Slot.Day),
			zap.String("slot", se.Slot.Slot),
			zap.Error(se.Err),
		)
	}

	occurrences, err := schedule.Expand(entries, start, end)
	if err != nil {
		return nil, fmt.Errorf("expand schedule: %w", err)
	}
	schedule.SortOccurrences(occurrences)

	return &CalendarView{
		WindowStart: start,
		WindowEnd:   end,
		Occurrences: occurrences,
		Skipped:     len(skipped),
	}, nil
}
