package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/api"
	"github.com/Freeeeeet/classroom_bot/internal/model"
)

type fakeStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[int64]*model.Session)}
}

func (f *fakeStore) Upsert(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if prev, ok := f.sessions[s.TelegramID]; ok {
		s.RemindersEnabled = prev.RemindersEnabled
	}
	cp := *s
	f.sessions[s.TelegramID] = &cp
	return nil
}

func (f *fakeStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[telegramID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) Delete(_ context.Context, telegramID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[telegramID]
	delete(f.sessions, telegramID)
	return ok, f.err
}

func (f *fakeStore) SetReminders(_ context.Context, telegramID int64, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[telegramID]; ok {
		s.RemindersEnabled = enabled
	}
	return f.err
}

func (f *fakeStore) ListReminderEnabled(context.Context) ([]*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Session
	for _, s := range f.sessions {
		if s.RemindersEnabled {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, f.err
}

type fakeBackend struct {
	login       *api.LoginResult
	loginErr    error
	classes     []model.ClassCatalogItem
	classesErr  error
	subjects    []model.SubjectItem
	subjectsErr error
	mySchedule  []model.ScheduleEntry
	scheduleErr error
	teaching    []model.ScheduleEntry
	teachingErr error
	enrollErr   error
	cancelErr   error

	enrolled  []string
	cancelled []string
}

func (f *fakeBackend) Login(context.Context, string, string) (*api.LoginResult, error) {
	return f.login, f.loginErr
}

func (f *fakeBackend) Classes(context.Context, string) ([]model.ClassCatalogItem, error) {
	return f.classes, f.classesErr
}

func (f *fakeBackend) Subjects(context.Context, string) ([]model.SubjectItem, error) {
	return f.subjects, f.subjectsErr
}

func (f *fakeBackend) MySchedule(context.Context, string, string) ([]model.ScheduleEntry, error) {
	return f.mySchedule, f.scheduleErr
}

func (f *fakeBackend) Enroll(_ context.Context, _ string, classID string) error {
	if f.enrollErr != nil {
		return f.enrollErr
	}
	f.enrolled = append(f.enrolled, classID)
	return nil
}

func (f *fakeBackend) CancelEnrollment(_ context.Context, _ string, classID string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, classID)
	return nil
}

func (f *fakeBackend) TeachingSchedule(context.Context, string) ([]model.ScheduleEntry, error) {
	return f.teaching, f.teachingErr
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func studentSession() *model.Session {
	return &model.Session{TelegramID: 1, ChatID: 1, UserID: "u1", Role: model.RoleStudent, Token: "jwt"}
}

func teacherSession() *model.Session {
	return &model.Session{TelegramID: 2, ChatID: 2, UserID: "t1", Role: model.RoleTeacher, Token: "jwt"}
}
