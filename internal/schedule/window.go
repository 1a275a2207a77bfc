package schedule

import "time"

// dateOf возвращает полночь дня t в часовом поясе loc
func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// endOfDay возвращает последний момент дня t
func endOfDay(t time.Time) time.Time {
	d := dateOf(t, t.Location())
	return d.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// nextWeekday возвращает первую дату >= from с днём недели wd
func nextWeekday(from time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, delta)
}

// startOfWeek возвращает полночь первого дня недели, содержащей date
func startOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	d := dateOf(date, date.Location())
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -back)
}

// WeekWindow возвращает видимое окно недельного вида
func WeekWindow(date time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	start := startOfWeek(date, weekStart)
	return start, endOfDay(start.AddDate(0, 0, 6))
}

// MonthWindow возвращает видимое окно месячного вида:
// от начала недели с первым числом до конца недели с последним числом месяца
func MonthWindow(date time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)

	start := startOfWeek(first, weekStart)
	end := endOfDay(startOfWeek(last, weekStart).AddDate(0, 0, 6))
	return start, end
}

// DayWindow возвращает окно одного дня
func DayWindow(date time.Time) (time.Time, time.Time) {
	d := dateOf(date, date.Location())
	return d, endOfDay(d)
}
