package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/schedule"
	"go.uber.org/zap"
)

// CatalogClass класс каталога с состоянием записи
type CatalogClass struct {
	Item         model.ClassCatalogItem
	View         model.EnrollmentView
	Occupancy    int
	HasOccupancy bool
}

// AllSubjects индекс предмета "без фильтра"
const AllSubjects = -1

// CatalogQuery фильтры каталога от бота. Предмет задаётся индексом
// в CatalogView.Subjects, чтобы callback data оставалась короткой.
type CatalogQuery struct {
	Query   string
	Subject int // AllSubjects - все предметы
	Day     string
}

// CatalogView каталог открытых классов для студента
type CatalogView struct {
	Classes  []CatalogClass
	Subjects []string // варианты фильтра по предмету
	Days     []string // варианты фильтра по дню
	Enrolled int      // на сколько классов каталога студент уже записан

	Subject string // выбранный предмет, пусто - все
	Query   string // строка поиска

	// ScheduleUnavailable - расписание студента не загрузилось,
	// поэтому все классы показаны как доступные для записи
	ScheduleUnavailable bool
}

type EnrollmentService struct {
	backend  Backend
	cutoff   time.Duration
	location *time.Location
	clock    Clock
	logger   *zap.Logger
}

func NewEnrollmentService(backend Backend, cutoff time.Duration, location *time.Location, clock Clock, logger *zap.Logger) *EnrollmentService {
	return &EnrollmentService{
		backend:  backend,
		cutoff:   cutoff,
		location: location,
		clock:    clock,
		logger:   logger,
	}
}

// Cutoff за сколько до первого занятия закрывается отмена
func (s *EnrollmentService) Cutoff() time.Duration {
	return s.cutoff
}

// Catalog собирает каталог классов, на которые студент ещё не записан
func (s *EnrollmentService) Catalog(ctx context.Context, session *model.Session, query CatalogQuery) (*CatalogView, error) {
	if err := RequireRole(session, model.RoleStudent); err != nil {
		return nil, err
	}

	catalog, err := s.backend.Classes(ctx, session.Token)
	if err != nil {
		return nil, backendError("load classes", err)
	}

	view := &CatalogView{Days: schedule.DayLabels(time.Monday)}

	subjects, err := s.backend.Subjects(ctx, session.Token)
	if err != nil {
		s.logger.Warn("Failed to load subjects, catalog filter disabled", zap.Error(err))
	}
	for _, subj := range subjects {
		view.Subjects = append(view.Subjects, subj.Name)
	}

	filter := schedule.CatalogFilter{Query: strings.TrimSpace(query.Query), Day: query.Day}
	if query.Subject >= 0 && query.Subject < len(view.Subjects) {
		filter.Subject = view.Subjects[query.Subject]
	}
	view.Subject = filter.Subject
	view.Query = filter.Query

	enrolled, err := s.backend.MySchedule(ctx, session.Token, session.UserID)
	if err != nil {
		s.logger.Warn("Failed to load student schedule, showing full catalog",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		view.ScheduleUnavailable = true
		enrolled = nil
	}

	states, err := schedule.Reconcile(catalog, enrolled, s.cutoff, s.clock.now(s.location))
	if err != nil {
		return nil, fmt.Errorf("reconcile catalog: %w", err)
	}
	for _, st := range states {
		if st.IsEnrolled {
			view.Enrolled++
		}
	}

	for _, item := range schedule.FilterCatalog(catalog, states, filter) {
		percent, ok := schedule.Occupancy(item)
		view.Classes = append(view.Classes, CatalogClass{
			Item:         item,
			View:         states[item.ID],
			Occupancy:    percent,
			HasOccupancy: ok,
		})
	}

	return view, nil
}

// Class возвращает класс каталога по ID
func (s *EnrollmentService) Class(ctx context.Context, session *model.Session, classID string) (*model.ClassCatalogItem, error) {
	if err := RequireRole(session, model.RoleStudent); err != nil {
		return nil, err
	}

	catalog, err := s.backend.Classes(ctx, session.Token)
	if err != nil {
		return nil, backendError("load classes", err)
	}
	for i := range catalog {
		if catalog[i].ID == classID {
			return &catalog[i], nil
		}
	}
	return nil, fmt.Errorf("class %s: %w", classID, ErrNotFound)
}

// Enrolled возвращает классы студента с ближайшим занятием и дедлайном отмены.
// Записи без classId не попадают в список: их нельзя отменить.
func (s *EnrollmentService) Enrolled(ctx context.Context, session *model.Session) ([]model.EnrolledClass, error) {
	if err := RequireRole(session, model.RoleStudent); err != nil {
		return nil, err
	}

	entries, err := s.backend.MySchedule(ctx, session.Token, session.UserID)
	if err != nil {
		return nil, backendError("load student schedule", err)
	}

	now := s.clock.now(s.location)
	classes := make([]model.EnrolledClass, 0, len(entries))
	for _, entry := range entries {
		if !entry.HasClassID() {
			continue
		}
		ec, err := schedule.EvaluateCancellation(entry, s.cutoff, now)
		if err != nil {
			return nil, fmt.Errorf("evaluate cancellation: %w", err)
		}
		classes = append(classes, ec)
	}

	// ближайшие занятия сверху, классы без будущих занятий в конце
	sort.SliceStable(classes, func(i, j int) bool {
		a, b := classes[i].FirstUpcoming, classes[j].FirstUpcoming
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	return classes, nil
}

// Enroll записывает студента на класс
func (s *EnrollmentService) Enroll(ctx context.Context, session *model.Session, classID string) error {
	if err := RequireRole(session, model.RoleStudent); err != nil {
		return err
	}

	if err := s.backend.Enroll(ctx, session.Token, classID); err != nil {
		return backendError("enroll", err)
	}

	s.logger.Info("Student enrolled",
		zap.String("user_id", session.UserID),
		zap.String("class_id", classID),
	)
	return nil
}

// CancelState возвращает состояние записи на класс для экрана подтверждения отмены
func (s *EnrollmentService) CancelState(ctx context.Context, session *model.Session, classID string) (*model.EnrolledClass, error) {
	if err := RequireRole(session, model.RoleStudent); err != nil {
		return nil, err
	}

	entries, err := s.backend.MySchedule(ctx, session.Token, session.UserID)
	if err != nil {
		return nil, backendError("load student schedule", err)
	}

	for _, entry := range entries {
		if entry.ClassID != classID || !entry.HasClassID() {
			continue
		}
		ec, err := schedule.EvaluateCancellation(entry, s.cutoff, s.clock.now(s.location))
		if err != nil {
			return nil, fmt.Errorf("evaluate cancellation: %w", err)
		}
		return &ec, nil
	}

	return nil, fmt.Errorf("class %s: %w", classID, ErrNotEnrolled)
}

// Cancel отменяет запись, если до первого занятия больше cutoff
func (s *EnrollmentService) Cancel(ctx context.Context, session *model.Session, classID string) error {
	state, err := s.CancelState(ctx, session, classID)
	if err != nil {
		return err
	}

	if !state.CancelAllowed {
		return fmt.Errorf("cancel %s (deadline %s): %w",
			classID, state.Cutoff.Format(time.RFC3339), ErrCancelWindowClosed)
	}

	if err := s.backend.CancelEnrollment(ctx, session.Token, classID); err != nil {
		return backendError("cancel enrollment", err)
	}

	s.logger.Info("Student enrollment cancelled",
		zap.String("user_id", session.UserID),
		zap.String("class_id", classID),
	)
	return nil
}
