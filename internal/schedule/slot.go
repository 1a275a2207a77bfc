package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

var slotPattern = regexp.MustCompile(`^\s*(\d{2}):(\d{2})\s*-\s*(\d{2}):(\d{2})\s*$`)

// ClockTime время суток с точностью до минуты
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On возвращает момент времени c в указанный день
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// ParsedSlot разобранное правило TimeSlot
type ParsedSlot struct {
	Weekday time.Weekday
	Start   ClockTime
	End     ClockTime
}

// ParseTimeRange разбирает строку вида "HH:MM-HH:MM".
// Начало должно быть строго раньше конца в пределах одних суток.
func ParseTimeRange(s string) (ClockTime, ClockTime, error) {
	m := slotPattern.FindStringSubmatch(s)
	if m == nil {
		return ClockTime{}, ClockTime{}, fmt.Errorf("%w: %q", ErrMalformedTimeRange, s)
	}

	var parts [4]int
	for i := range parts {
		// регулярка гарантирует две цифры
		parts[i], _ = strconv.Atoi(m[i+1])
	}

	start := ClockTime{Hour: parts[0], Minute: parts[1]}
	end := ClockTime{Hour: parts[2], Minute: parts[3]}

	if !validClock(start) || !validClock(end) {
		return ClockTime{}, ClockTime{}, fmt.Errorf("%w: %q out of range", ErrMalformedTimeRange, s)
	}
	if start.minutes() >= end.minutes() {
		return ClockTime{}, ClockTime{}, fmt.Errorf("%w: %q start is not before end", ErrMalformedTimeRange, s)
	}

	return start, end, nil
}

func validClock(c ClockTime) bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// ParseTimeSlot проверяет день и диапазон времени слота
func ParseTimeSlot(ts model.TimeSlot) (ParsedSlot, error) {
	wd, ok := ResolveDay(ts.Day)
	if !ok {
		return ParsedSlot{}, fmt.Errorf("%w: %q", ErrUnrecognizedDayLabel, ts.Day)
	}

	start, end, err := ParseTimeRange(ts.Slot)
	if err != nil {
		return ParsedSlot{}, err
	}

	return ParsedSlot{Weekday: wd, Start: start, End: end}, nil
}

// Validate возвращает все слоты, которые движок пропустит.
// Нужен только для логирования: Expand и Reconcile работают и без него.
func Validate(entries []model.ScheduleEntry) []SlotError {
	var errs []SlotError
	for i, entry := range entries {
		for j, ts := range entry.TimeSlots {
			if _, err := ParseTimeSlot(ts); err != nil {
				errs = append(errs, SlotError{
					EntryIndex: i,
					SlotIndex:  j,
					ClassName:  entry.ClassName,
					Slot:       ts,
					Err:        err,
				})
			}
		}
	}
	return errs
}
