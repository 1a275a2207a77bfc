package schedule

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// dayLabels - единственное место, где подписи дней сопоставляются с днями недели.
// Нумерация бэкенда (0 = Chủ nhật ... 6 = Thứ 7) совпадает с time.Weekday.
var dayLabels = map[string]time.Weekday{
	"chủ nhật": time.Sunday,
	"thứ 2":    time.Monday,
	"thứ 3":    time.Tuesday,
	"thứ 4":    time.Wednesday,
	"thứ 5":    time.Thursday,
	"thứ 6":    time.Friday,
	"thứ 7":    time.Saturday,

	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// displayLabels подписи дней для вывода, индекс = time.Weekday
var displayLabels = [7]string{
	"Chủ nhật",
	"Thứ 2",
	"Thứ 3",
	"Thứ 4",
	"Thứ 5",
	"Thứ 6",
	"Thứ 7",
}

// ResolveDay возвращает день недели по подписи.
// Регистр, лишние пробелы и форма Unicode-нормализации не важны.
func ResolveDay(label string) (time.Weekday, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(norm.NFC.String(label)), " "))
	wd, ok := dayLabels[key]
	return wd, ok
}

// DayLabel возвращает подпись дня недели в формате бэкенда
func DayLabel(wd time.Weekday) string {
	if wd < time.Sunday || wd > time.Saturday {
		return ""
	}
	return displayLabels[wd]
}

// DayLabels возвращает подписи дней, начиная с указанного
func DayLabels(weekStart time.Weekday) []string {
	labels := make([]string, 0, len(displayLabels))
	for i := 0; i < len(displayLabels); i++ {
		labels = append(labels, displayLabels[(int(weekStart)+i)%7])
	}
	return labels
}
