package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/google/uuid"
)

// occurrenceNamespace пространство имён для детерминированных ID занятий
var occurrenceNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("classroom_bot.occurrence"))

// Title формирует заголовок занятия для календаря
func Title(subject, className, teacher string) string {
	return fmt.Sprintf("%s - %s - GV: %s", subject, className, teacher)
}

// Expand разворачивает еженедельные правила в конкретные занятия внутри окна
// [windowStart, windowEnd]. Окно считается по дням: от начала дня windowStart
// до конца дня windowEnd в часовом поясе windowStart.
//
// Слоты с неизвестным днём или неверным временем пропускаются.
// Занятия одного слота идут по возрастанию, порядок между слотами не гарантируется.
func Expand(entries []model.ScheduleEntry, windowStart, windowEnd time.Time) ([]model.CalendarOccurrence, error) {
	if windowEnd.Before(windowStart) {
		return nil, fmt.Errorf("expand: %w (%s < %s)", ErrInvalidWindow,
			windowEnd.Format(time.RFC3339), windowStart.Format(time.RFC3339))
	}

	loc := windowStart.Location()
	from := dateOf(windowStart, loc)
	to := dateOf(windowEnd, loc)

	occurrences := make([]model.CalendarOccurrence, 0)
	for _, entry := range entries {
		for _, ts := range entry.TimeSlots {
			occurrences = append(occurrences, expandSlot(entry, ts, from, to)...)
		}
	}

	return occurrences, nil
}

// expandSlot разворачивает один слот между датами from и to включительно
func expandSlot(entry model.ScheduleEntry, ts model.TimeSlot, from, to time.Time) []model.CalendarOccurrence {
	parsed, err := ParseTimeSlot(ts)
	if err != nil {
		return nil
	}

	loc := from.Location()
	if ts.Start != nil {
		if d := dateOf(*ts.Start, loc); d.After(from) {
			from = d
		}
	}
	if ts.End != nil {
		if d := dateOf(*ts.End, loc); d.Before(to) {
			to = d
		}
	}
	if from.After(to) {
		return nil
	}

	var out []model.CalendarOccurrence
	for day := nextWeekday(from, parsed.Weekday); !day.After(to); day = day.AddDate(0, 0, 7) {
		out = append(out, newOccurrence(entry, ts, parsed.Start.On(day), parsed.End.On(day)))
	}
	return out
}

func newOccurrence(entry model.ScheduleEntry, ts model.TimeSlot, start, end time.Time) model.CalendarOccurrence {
	classKey := entry.ClassID
	if classKey == "" {
		classKey = entry.ClassName
	}
	name := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		classKey, entry.SubjectName, entry.TeacherName, ts.Day, ts.Slot, start.Format(time.RFC3339))

	return model.CalendarOccurrence{
		ID:          uuid.NewSHA1(occurrenceNamespace, []byte(name)),
		Title:       Title(entry.SubjectName, entry.ClassName, entry.TeacherName),
		Start:       start,
		End:         end,
		Day:         ts.Day,
		Slot:        ts.Slot,
		ClassID:     entry.ClassID,
		ClassName:   entry.ClassName,
		SubjectName: entry.SubjectName,
		TeacherName: entry.TeacherName,
	}
}

// SortOccurrences сортирует занятия по началу, затем по заголовку
func SortOccurrences(occurrences []model.CalendarOccurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		if !occurrences[i].Start.Equal(occurrences[j].Start) {
			return occurrences[i].Start.Before(occurrences[j].Start)
		}
		return occurrences[i].Title < occurrences[j].Title
	})
}
