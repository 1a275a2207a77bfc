package schedule

import (
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

// FirstUpcomingOccurrence возвращает ближайшее начало занятия не раньше now.
// false - если все слоты закончились или ни один слот не удалось разобрать.
// Расчёт идёт в часовом поясе now.
func FirstUpcomingOccurrence(entry model.ScheduleEntry, now time.Time) (time.Time, bool) {
	var (
		best  time.Time
		found bool
	)

	for _, ts := range entry.TimeSlots {
		candidate, ok := firstUpcomingForSlot(ts, now)
		if !ok {
			continue
		}
		if !found || candidate.Before(best) {
			best = candidate
			found = true
		}
	}

	return best, found
}

func firstUpcomingForSlot(ts model.TimeSlot, now time.Time) (time.Time, bool) {
	parsed, err := ParseTimeSlot(ts)
	if err != nil {
		return time.Time{}, false
	}

	loc := now.Location()
	from := dateOf(now, loc)
	if ts.Start != nil {
		if d := dateOf(*ts.Start, loc); d.After(from) {
			from = d
		}
	}

	day := nextWeekday(from, parsed.Weekday)
	start := parsed.Start.On(day)
	if start.Before(now) {
		day = day.AddDate(0, 0, 7)
		start = parsed.Start.On(day)
	}

	if ts.End != nil && day.After(dateOf(*ts.End, loc)) {
		return time.Time{}, false
	}

	return start, true
}
