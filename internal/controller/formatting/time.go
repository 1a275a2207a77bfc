package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/schedule"
)

// FormatDate форматирует дату: 08/01/2024
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateTime форматирует дату и время: 08:00 08/01/2024
func FormatDateTime(t time.Time) string {
	return t.Format("15:04 02/01/2006")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDayHeader заголовок дня: Thứ 2, 08/01/2024
func FormatDayHeader(t time.Time) string {
	return fmt.Sprintf("%s, %s", schedule.DayLabel(t.Weekday()), FormatDate(t))
}

// FormatPeriod диапазон дат окна календаря
func FormatPeriod(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return FormatDayHeader(start)
	}
	return fmt.Sprintf("%s - %s", FormatDate(start), FormatDate(end))
}

// FormatDuration форматирует длительность: "1 ngày 2 giờ", "45 phút"
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "dưới 1 phút"
	}

	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%d ngày %d giờ", days, hours)
	case days > 0:
		return fmt.Sprintf("%d ngày", days)
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d giờ %d phút", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d giờ", hours)
	default:
		return fmt.Sprintf("%d phút", minutes)
	}
}
