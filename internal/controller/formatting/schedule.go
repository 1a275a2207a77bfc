package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
)

// FormatOccurrence одна строка занятия
func FormatOccurrence(occ model.CalendarOccurrence, now time.Time) string {
	marker := "🕘"
	switch {
	case !occ.End.After(now):
		marker = "✔️"
	case !occ.Start.After(now):
		marker = "▶️"
	}

	return fmt.Sprintf("%s %s <b>%s</b> - %s\n     👨‍🏫 GV: %s",
		marker,
		FormatTimeRange(occ.Start, occ.End),
		html.EscapeString(occ.SubjectName),
		html.EscapeString(occ.ClassName),
		html.EscapeString(occ.TeacherName),
	)
}

// FormatCalendar расписание окна, сгруппированное по дням
func FormatCalendar(title string, view *service.CalendarView, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📅 <b>%s</b>\n%s\n", html.EscapeString(title), FormatPeriod(view.WindowStart, view.WindowEnd))

	if len(view.Occurrences) == 0 {
		sb.WriteString("\nKhông có buổi học nào.")
	}

	var day time.Time
	for _, occ := range view.Occurrences {
		d := time.Date(occ.Start.Year(), occ.Start.Month(), occ.Start.Day(), 0, 0, 0, 0, occ.Start.Location())
		if !d.Equal(day) {
			day = d
			header := FormatDayHeader(d)
			if sameDay(d, now) {
				header += " (hôm nay)"
			}
			fmt.Fprintf(&sb, "\n<b>%s</b>\n", header)
		}
		sb.WriteString(FormatOccurrence(occ, now))
		sb.WriteString("\n")
	}

	if view.Skipped > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Bỏ qua %d khung giờ không hợp lệ.", view.Skipped)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatReminder ежедневное напоминание
func FormatReminder(session *model.Session, view *service.CalendarView, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🔔 Chào %s! Lịch học hôm nay (%s):\n\n",
		html.EscapeString(session.Name), FormatDate(view.WindowStart))
	for _, occ := range view.Occurrences {
		sb.WriteString(FormatOccurrence(occ, now))
		sb.WriteString("\n")
	}
	sb.WriteString("\nTắt nhắc lịch: /reminders off")

	return sb.String()
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
