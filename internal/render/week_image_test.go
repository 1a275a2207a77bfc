package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

func TestWeekImage(t *testing.T) {
	weekStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	occurrences := []model.CalendarOccurrence{
		{
			Start: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC),
			ClassName: "IELTS 6.5", SubjectName: "English",
		},
		{
			Start: time.Date(2024, 1, 4, 18, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 4, 19, 30, 0, 0, time.UTC),
			ClassName: "Toán 10 nâng cao buổi tối", SubjectName: "Toán",
		},
		// вне недели
		{
			Start: time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 9, 11, 0, 0, 0, time.UTC),
		},
	}

	data, err := WeekImage(weekStart, occurrences, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestWeekImage_Empty(t *testing.T) {
	data, err := WeekImage(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, time.Now())
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestCalculateHourRange(t *testing.T) {
	byDay := map[string][]model.CalendarOccurrence{
		"2024-01-02": {{
			Start: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 2, 11, 30, 0, 0, time.UTC),
		}},
	}
	assert.Equal(t, hourRange{start: 8, end: 13, total: 5}, calculateHourRange(byDay))
	assert.Equal(t, hourRange{start: 6, end: 22, total: 16}, calculateHourRange(nil))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "CN", weekdayShort(time.Sunday))
	assert.Equal(t, "T2", weekdayShort(time.Monday))
	assert.Equal(t, "T7", weekdayShort(time.Saturday))
	assert.Equal(t, "Toán…", truncate("Toán 10", 5))
	assert.Equal(t, SubjectColor("English"), SubjectColor("English"))
}
