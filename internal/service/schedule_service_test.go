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

var ict = time.FixedZone("ICT", 7*3600)

func scheduleEntries() []model.ScheduleEntry {
	return []model.ScheduleEntry{
		{
			ClassID: "c1", ClassName: "IELTS 6.5", SubjectName: "English", TeacherName: "A",
			TimeSlots: []model.TimeSlot{
				{Day: "Thứ 3", Slot: "09:00-11:00"},
				{Day: "Thứ 5", Slot: "25:00-26:00"},
			},
		},
		{
			ClassID: "c2", ClassName: "Toán 10", SubjectName: "Toán", TeacherName: "B",
			TimeSlots: []model.TimeSlot{{Day: "Thứ 2", Slot: "07:30-09:00"}},
		},
	}
}

func TestScheduleService_Week(t *testing.T) {
	backend := &fakeBackend{mySchedule: scheduleEntries()}
	svc := NewScheduleService(backend, ict, time.Monday, nil, zap.NewNop())

	view, err := svc.Week(context.Background(), studentSession(), time.Date(2024, 1, 3, 12, 0, 0, 0, ict))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, ict), view.WindowStart)
	assert.Equal(t, 1, view.Skipped)
	require.Len(t, view.Occurrences, 2)
	assert.Equal(t, "c2", view.Occurrences[0].ClassID)
	assert.Equal(t, "c1", view.Occurrences[1].ClassID)

	days := view.Days()
	assert.Len(t, days, 2)
	assert.Len(t, days[time.Date(2024, 1, 2, 0, 0, 0, 0, ict)], 1)
}

func TestScheduleService_MonthAndToday(t *testing.T) {
	backend := &fakeBackend{mySchedule: scheduleEntries()}
	svc := NewScheduleService(backend, ict, time.Sunday, fixedClock(time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)), zap.NewNop())
	ctx := context.Background()

	month, err := svc.Month(ctx, studentSession(), time.Date(2024, 2, 10, 0, 0, 0, 0, ict))
	require.NoError(t, err)
	assert.Len(t, month.Occurrences, 10) // по 5 понедельников и вторников

	today, err := svc.Today(ctx, studentSession(), svc.Now())
	require.NoError(t, err)
	require.Len(t, today.Occurrences, 1)
	assert.Equal(t, time.Tuesday, today.Occurrences[0].Start.Weekday())
}

func TestScheduleService_EntriesByRole(t *testing.T) {
	backend := &fakeBackend{
		mySchedule: scheduleEntries()[:1],
		teaching:   scheduleEntries(),
	}
	svc := NewScheduleService(backend, ict, time.Sunday, nil, zap.NewNop())

	student, err := svc.Entries(context.Background(), studentSession())
	require.NoError(t, err)
	assert.Len(t, student, 1)

	teacher, err := svc.Entries(context.Background(), teacherSession())
	require.NoError(t, err)
	assert.Len(t, teacher, 2)
}

func TestScheduleService_Teaching(t *testing.T) {
	backend := &fakeBackend{teaching: scheduleEntries()}
	svc := NewScheduleService(backend, ict, time.Sunday, nil, zap.NewNop())
	date := time.Date(2024, 1, 3, 0, 0, 0, 0, ict)

	_, err := svc.Teaching(context.Background(), studentSession(), date)
	assert.True(t, errors.Is(err, ErrForbidden))

	view, err := svc.Teaching(context.Background(), teacherSession(), date)
	require.NoError(t, err)
	assert.Len(t, view.Occurrences, 2)
}

func TestScheduleService_SessionExpired(t *testing.T) {
	backend := &fakeBackend{scheduleErr: &api.Error{StatusCode: http.StatusUnauthorized}}
	svc := NewScheduleService(backend, ict, time.Sunday, nil, zap.NewNop())

	_, err := svc.Week(context.Background(), studentSession(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionExpired))
}
