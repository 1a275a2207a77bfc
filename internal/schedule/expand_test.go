package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func entry(slots ...model.TimeSlot) model.ScheduleEntry {
	return model.ScheduleEntry{
		ClassID:     "c1",
		ClassName:   "IELTS 6.5",
		SubjectName: "English",
		TeacherName: "Nguyễn Văn A",
		TimeSlots:   slots,
	}
}

func TestExpand_SingleTuesdayInWeek(t *testing.T) {
	ws, we := date(2024, 1, 1), date(2024, 1, 7)

	got, err := Expand([]model.ScheduleEntry{entry(model.TimeSlot{Day: "Tuesday", Slot: "09:00-11:00"})}, ws, we)
	require.NoError(t, err)
	require.Len(t, got, 1)

	occ := got[0]
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), occ.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC), occ.End)
	assert.Equal(t, "English - IELTS 6.5 - GV: Nguyễn Văn A", occ.Title)
	assert.Equal(t, "Tuesday", occ.Day)
	assert.Equal(t, "09:00-11:00", occ.Slot)
	assert.Equal(t, "c1", occ.ClassID)
	assert.Equal(t, 2*time.Hour, occ.Duration())
}

func TestExpand_InvalidSlotIsSkipped(t *testing.T) {
	e := entry(
		model.TimeSlot{Day: "Thứ 3", Slot: "25:00-26:00"},
		model.TimeSlot{Day: "Thứ 10", Slot: "09:00-10:00"},
		model.TimeSlot{Day: "Thứ 5", Slot: "18:00-19:30"},
	)

	got, err := Expand([]model.ScheduleEntry{e}, date(2024, 1, 1), date(2024, 1, 7))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, 1, 4, 18, 0, 0, 0, time.UTC), got[0].Start)
}

func TestExpand_OnlyInvalidSlot(t *testing.T) {
	got, err := Expand([]model.ScheduleEntry{entry(model.TimeSlot{Day: "Thứ 3", Slot: "25:00-26:00"})}, date(2024, 1, 1), date(2024, 1, 7))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpand_WeeklySpacingAndContainment(t *testing.T) {
	ws, we := MonthWindow(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), time.Sunday)
	e := entry(model.TimeSlot{Day: "Thứ 2", Slot: "17:45-19:15"})

	got, err := Expand([]model.ScheduleEntry{e}, ws, we)
	require.NoError(t, err)
	require.Len(t, got, 5) // 29.01, 05.02, 12.02, 19.02, 26.02

	for i, occ := range got {
		assert.Equal(t, time.Monday, occ.Start.Weekday())
		assert.True(t, occ.Start.Before(occ.End))
		assert.False(t, occ.Start.Before(ws), "occurrence %d starts before window", i)
		assert.False(t, occ.End.After(we), "occurrence %d ends after window", i)
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, occ.Start.Sub(got[i-1].Start))
		}
	}
}

func TestExpand_RespectsSlotBounds(t *testing.T) {
	e := entry(model.TimeSlot{
		Day:   "Thứ 4",
		Slot:  "08:00-09:30",
		Start: datePtr(2024, 1, 10),
		End:   datePtr(2024, 1, 24),
	})

	got, err := Expand([]model.ScheduleEntry{e}, date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 10, got[0].Start.Day())
	assert.Equal(t, 17, got[1].Start.Day())
	assert.Equal(t, 24, got[2].Start.Day())
}

func TestExpand_BoundsOutsideWindow(t *testing.T) {
	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
	}{
		{name: "ended before window", start: datePtr(2023, 9, 1), end: datePtr(2023, 12, 20)},
		{name: "starts after window", start: datePtr(2024, 3, 1)},
		{name: "inverted bounds", start: datePtr(2024, 1, 20), end: datePtr(2024, 1, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entry(model.TimeSlot{Day: "Thứ 4", Slot: "08:00-09:30", Start: tt.start, End: tt.end})
			got, err := Expand([]model.ScheduleEntry{e}, date(2024, 1, 1), date(2024, 1, 31))
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestExpand_BoundsUseWindowLocation(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	// полночь 05.08 по Ханою, сохранённая бэкендом в UTC
	start := time.Date(2025, 8, 4, 17, 0, 0, 0, time.UTC)
	e := entry(model.TimeSlot{Day: "Thứ 3", Slot: "09:00-11:00", Start: &start})

	ws := time.Date(2025, 8, 3, 0, 0, 0, 0, ict)
	we := time.Date(2025, 8, 9, 23, 59, 0, 0, ict)

	got, err := Expand([]model.ScheduleEntry{e}, ws, we)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 8, 5, 9, 0, 0, 0, ict), got[0].Start)
}

func TestExpand_InvalidWindow(t *testing.T) {
	_, err := Expand(nil, date(2024, 1, 7), date(2024, 1, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWindow))
}

func TestExpand_SameDayWindow(t *testing.T) {
	e := entry(model.TimeSlot{Day: "Thứ 3", Slot: "09:00-11:00"})
	got, err := Expand([]model.ScheduleEntry{e}, date(2024, 1, 2), date(2024, 1, 2))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExpand_Deterministic(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(model.TimeSlot{Day: "Thứ 2", Slot: "08:00-10:00"}, model.TimeSlot{Day: "Thứ 6", Slot: "14:00-15:00"}),
		{ClassName: "Toán 10", SubjectName: "Toán", TeacherName: "Trần B", TimeSlots: []model.TimeSlot{{Day: "Thứ 7", Slot: "07:30-09:00"}}},
	}
	ws, we := date(2024, 1, 1), date(2024, 3, 31)

	first, err := Expand(entries, ws, we)
	require.NoError(t, err)
	second, err := Expand(entries, ws, we)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	ids := make(map[string]bool)
	for _, occ := range first {
		assert.False(t, ids[occ.ID.String()], "duplicate id %s", occ.ID)
		ids[occ.ID.String()] = true
	}
}

func TestExpand_MatchesRRule(t *testing.T) {
	ws, we := date(2024, 1, 1), date(2024, 6, 30)
	e := entry(model.TimeSlot{Day: "Thứ 3", Slot: "09:00-11:00", Start: datePtr(2024, 2, 1), End: datePtr(2024, 5, 15)})

	got, err := Expand([]model.ScheduleEntry{e}, ws, we)
	require.NoError(t, err)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.TU},
		Dtstart:   time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		Until:     time.Date(2024, 5, 15, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)
	want := rule.Between(ws, we, true)

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i].Start)
	}
}

func TestSortOccurrences(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry(model.TimeSlot{Day: "Thứ 6", Slot: "14:00-15:00"}, model.TimeSlot{Day: "Thứ 2", Slot: "08:00-10:00"}),
	}
	got, err := Expand(entries, date(2024, 1, 1), date(2024, 1, 14))
	require.NoError(t, err)
	require.Len(t, got, 4)

	SortOccurrences(got)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Start.Before(got[i-1].Start))
	}
	assert.Equal(t, time.Monday, got[0].Start.Weekday())
}
