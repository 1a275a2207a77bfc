package export

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/schedule"
)

const (
	productID    = "-//classroom_bot//schedule//VI"
	calendarName = "Thời khóa biểu"
	icsTimestamp = "20060102T150405Z"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("classroom_bot/ics"))

var byDay = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Calendar собирает iCalendar с одним повторяющимся VEVENT на каждый валидный слот.
// DTSTART - первое занятие слота внутри окна, UNTIL - конец окна или граница слота.
// Слоты без занятий в окне в календарь не попадают.
func Calendar(entries []model.ScheduleEntry, windowStart, windowEnd, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calendarName)

	loc := windowStart.Location()
	for _, entry := range entries {
		for _, ts := range entry.TimeSlots {
			single := entry
			single.TimeSlots = []model.TimeSlot{ts}

			occurrences, err := schedule.Expand([]model.ScheduleEntry{single}, windowStart, windowEnd)
			if err != nil {
				return "", fmt.Errorf("expand slot: %w", err)
			}
			if len(occurrences) == 0 {
				continue
			}
			first := occurrences[0]
			last := occurrences[len(occurrences)-1]

			rule, err := weeklyRule(first.Start, untilOf(last.Start, loc))
			if err != nil {
				return "", fmt.Errorf("build rrule for %q: %w", entry.ClassName, err)
			}

			event := cal.AddEvent(eventUID(entry, ts, first.Start))
			event.SetDtStampTime(now)
			event.SetStartAt(first.Start)
			event.SetEndAt(first.End)
			event.SetSummary(first.Title)
			event.SetDescription(description(entry, ts))
			event.AddProperty(ical.ComponentPropertyRrule, rule)
		}
	}

	return cal.Serialize(), nil
}

// weeklyRule возвращает RRULE для еженедельного повторения от start до until.
// BYDAY считается по UTC, потому что DTSTART пишется в UTC.
func weeklyRule(start, until time.Time) (string, error) {
	rule := fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s",
		byDay[start.UTC().Weekday()], until.UTC().Format(icsTimestamp))

	// проверяем, что правило разбирается и даёт start первым занятием
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return "", err
	}
	r.DTStart(start.UTC())
	if got := r.After(start.UTC(), true); !got.Equal(start) {
		return "", fmt.Errorf("rule %s does not start at %s", rule, start.Format(time.RFC3339))
	}
	return rule, nil
}

// untilOf возвращает конец дня последнего занятия
func untilOf(lastStart time.Time, loc *time.Location) time.Time {
	d := lastStart.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc)
}

func eventUID(entry model.ScheduleEntry, ts model.TimeSlot, first time.Time) string {
	key := entry.ClassID
	if key == "" {
		key = entry.ClassName
	}
	name := strings.Join([]string{key, entry.SubjectName, entry.TeacherName, ts.Day, ts.Slot, first.UTC().Format(icsTimestamp)}, "|")
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@classroom_bot"
}

func description(entry model.ScheduleEntry, ts model.TimeSlot) string {
	return fmt.Sprintf("Lớp: %s\nMôn: %s\nGV: %s\n%s %s",
		entry.ClassName, entry.SubjectName, entry.TeacherName, ts.Day, ts.Slot)
}
