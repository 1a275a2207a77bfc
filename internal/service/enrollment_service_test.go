package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/api"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// понедельник 01.01.2024 12:00 по Ханою
var monday = time.Date(2024, 1, 1, 12, 0, 0, 0, ict)

func enrollmentFixture() *fakeBackend {
	count := 5
	return &fakeBackend{
		classes: []model.ClassCatalogItem{
			{ID: "c1", Name: "IELTS 6.5", SubjectName: "English", TeacherName: "A", MaxStudents: 10, EnrolledCount: &count,
				TimeSlots: []model.TimeSlot{{Day: "Thứ 3", Slot: "09:00-11:00"}}},
			{ID: "c2", Name: "Toán 10", SubjectName: "Toán", TeacherName: "B", MaxStudents: 20,
				TimeSlots: []model.TimeSlot{{Day: "Thứ 5", Slot: "18:00-19:30"}}},
			{ID: "c3", Name: "Văn 10", SubjectName: "Văn", TeacherName: "C", MaxStudents: 20,
				TimeSlots: []model.TimeSlot{{Day: "Thứ 2", Slot: "07:00-08:00"}}},
		},
		subjects: []model.SubjectItem{{ID: "s1", Name: "English"}, {ID: "s2", Name: "Toán"}},
		mySchedule: []model.ScheduleEntry{
			// вторник 09:00 - меньше чем через 24 часа
			{ClassID: "c1", ClassName: "IELTS 6.5", SubjectName: "English", TeacherName: "A",
				TimeSlots: []model.TimeSlot{{Day: "Thứ 3", Slot: "09:00-11:00"}}},
			// старая запись без classId
			{ClassName: "Toán 10", SubjectName: "Toán", TeacherName: "B",
				TimeSlots: []model.TimeSlot{{Day: "Thứ 5", Slot: "18:00-19:30"}}},
		},
	}
}

func newEnrollmentService(backend Backend) *EnrollmentService {
	return NewEnrollmentService(backend, 24*time.Hour, ict, fixedClock(monday), zap.NewNop())
}

func TestEnrollmentService_Catalog(t *testing.T) {
	svc := newEnrollmentService(enrollmentFixture())

	view, err := svc.Catalog(context.Background(), studentSession(), CatalogQuery{Subject: AllSubjects})
	require.NoError(t, err)

	require.Len(t, view.Classes, 1)
	assert.Equal(t, "c3", view.Classes[0].Item.ID)
	assert.Equal(t, 2, view.Enrolled)
	assert.Equal(t, []string{"English", "Toán"}, view.Subjects)
	assert.Len(t, view.Days, 7)
	assert.Equal(t, "Thứ 2", view.Days[0])
	assert.False(t, view.ScheduleUnavailable)
}

func TestEnrollmentService_CatalogFilters(t *testing.T) {
	backend := enrollmentFixture()
	backend.mySchedule = nil
	svc := newEnrollmentService(backend)
	ctx := context.Background()

	// индекс 1 - "Toán" из списка предметов
	view, err := svc.Catalog(ctx, studentSession(), CatalogQuery{Subject: 1})
	require.NoError(t, err)
	assert.Equal(t, "Toán", view.Subject)
	require.Len(t, view.Classes, 1)
	assert.Equal(t, "c2", view.Classes[0].Item.ID)

	view, err = svc.Catalog(ctx, studentSession(), CatalogQuery{Query: " văn ", Subject: AllSubjects, Day: "Thứ 2"})
	require.NoError(t, err)
	assert.Equal(t, "văn", view.Query)
	assert.Empty(t, view.Subject)
	require.Len(t, view.Classes, 1)
	assert.Equal(t, "c3", view.Classes[0].Item.ID)

	// поиск вместе с предметом
	view, err = svc.Catalog(ctx, studentSession(), CatalogQuery{Query: "văn", Subject: 1})
	require.NoError(t, err)
	assert.Empty(t, view.Classes)

	// индекс вне списка - без фильтра
	view, err = svc.Catalog(ctx, studentSession(), CatalogQuery{Subject: 7})
	require.NoError(t, err)
	assert.Empty(t, view.Subject)
	assert.Len(t, view.Classes, 3)
}

func TestEnrollmentService_CatalogDegrades(t *testing.T) {
	backend := enrollmentFixture()
	backend.scheduleErr = errors.New("timeout")
	backend.subjectsErr = errors.New("timeout")
	svc := newEnrollmentService(backend)

	view, err := svc.Catalog(context.Background(), studentSession(), CatalogQuery{Subject: AllSubjects})
	require.NoError(t, err)
	assert.True(t, view.ScheduleUnavailable)
	assert.Empty(t, view.Subjects)
	require.Len(t, view.Classes, 3)

	first := view.Classes[0]
	assert.True(t, first.HasOccupancy)
	assert.Equal(t, 50, first.Occupancy)
}

func TestEnrollmentService_CatalogRequiresStudent(t *testing.T) {
	svc := newEnrollmentService(enrollmentFixture())
	_, err := svc.Catalog(context.Background(), teacherSession(), CatalogQuery{Subject: AllSubjects})
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestEnrollmentService_Enrolled(t *testing.T) {
	backend := enrollmentFixture()
	backend.mySchedule = append(backend.mySchedule,
		model.ScheduleEntry{ClassID: "c9", ClassName: "Ended",
			TimeSlots: []model.TimeSlot{{Day: "Thứ 2", Slot: "07:00-08:00", End: &monday}}},
		model.ScheduleEntry{ClassID: "c3", ClassName: "Văn 10",
			TimeSlots: []model.TimeSlot{{Day: "Thứ 4", Slot: "07:00-08:00"}}},
	)
	svc := newEnrollmentService(backend)

	classes, err := svc.Enrolled(context.Background(), studentSession())
	require.NoError(t, err)
	require.Len(t, classes, 3)

	assert.Equal(t, "c1", classes[0].Entry.ClassID)
	assert.False(t, classes[0].CancelAllowed)
	assert.Equal(t, "c3", classes[1].Entry.ClassID)
	assert.True(t, classes[1].CancelAllowed)
	assert.Equal(t, "c9", classes[2].Entry.ClassID)
	assert.Nil(t, classes[2].FirstUpcoming)
	assert.True(t, classes[2].CancelAllowed)
}

func TestEnrollmentService_Cancel(t *testing.T) {
	backend := enrollmentFixture()
	backend.mySchedule = append(backend.mySchedule, model.ScheduleEntry{
		ClassID: "c3", TimeSlots: []model.TimeSlot{{Day: "Thứ 4", Slot: "07:00-08:00"}},
	})
	svc := newEnrollmentService(backend)
	ctx := context.Background()

	err := svc.Cancel(ctx, studentSession(), "c1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelWindowClosed))

	err = svc.Cancel(ctx, studentSession(), "c2")
	assert.True(t, errors.Is(err, ErrNotEnrolled))

	require.NoError(t, svc.Cancel(ctx, studentSession(), "c3"))
	assert.Equal(t, []string{"c3"}, backend.cancelled)
}

func TestEnrollmentService_Enroll(t *testing.T) {
	backend := enrollmentFixture()
	svc := newEnrollmentService(backend)
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, studentSession(), "c3"))
	assert.Equal(t, []string{"c3"}, backend.enrolled)

	backend.enrollErr = &api.Error{StatusCode: http.StatusConflict, Message: "Lớp đã đầy"}
	err := svc.Enroll(ctx, studentSession(), "c2")
	require.Error(t, err)
	assert.Equal(t, "Lớp đã đầy", api.Message(err, ""))

	assert.True(t, errors.Is(svc.Enroll(ctx, teacherSession(), "c2"), ErrForbidden))
}

func TestEnrollmentService_Class(t *testing.T) {
	svc := newEnrollmentService(enrollmentFixture())

	item, err := svc.Class(context.Background(), studentSession(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "Toán 10", item.Name)

	_, err = svc.Class(context.Background(), studentSession(), "zz")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Class(context.Background(), teacherSession(), "c2")
	assert.True(t, errors.Is(err, ErrForbidden))
}
