package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/api"
	"github.com/Freeeeeet/classroom_bot/internal/model"
)

// SessionStore хранилище сессий (repository.SessionRepository)
type SessionStore interface {
	Upsert(ctx context.Context, s *model.Session) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error)
	Delete(ctx context.Context, telegramID int64) (bool, error)
	SetReminders(ctx context.Context, telegramID int64, enabled bool) error
	ListReminderEnabled(ctx context.Context) ([]*model.Session, error)
}

// Backend API учебного центра (api.Client)
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Classes(ctx context.Context, token string) ([]model.ClassCatalogItem, error)
	Subjects(ctx context.Context, token string) ([]model.SubjectItem, error)
	MySchedule(ctx context.Context, token, studentID string) ([]model.ScheduleEntry, error)
	Enroll(ctx context.Context, token, classID string) error
	CancelEnrollment(ctx context.Context, token, classID string) error
	TeachingSchedule(ctx context.Context, token string) ([]model.ScheduleEntry, error)
}

// Clock источник текущего времени
type Clock func() time.Time

func (c Clock) now(loc *time.Location) time.Time {
	if c == nil {
		return time.Now().In(loc)
	}
	return c().In(loc)
}
