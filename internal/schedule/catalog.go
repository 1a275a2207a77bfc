package schedule

import (
	"math"
	"strings"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

// CatalogFilter фильтры каталога открытых классов
type CatalogFilter struct {
	Query   string // поиск по названию, преподавателю, предмету, дню и времени
	Subject string // точное название предмета
	Day     string // точная подпись дня
}

// FilterCatalog возвращает классы, на которые студент ещё не записан,
// с учётом фильтров. Порядок каталога сохраняется.
func FilterCatalog(catalog []model.ClassCatalogItem, views map[string]model.EnrollmentView, filter CatalogFilter) []model.ClassCatalogItem {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]model.ClassCatalogItem, 0, len(catalog))
	for _, item := range catalog {
		if views[item.ID].IsEnrolled {
			continue
		}
		if filter.Subject != "" && item.SubjectName != filter.Subject {
			continue
		}
		if filter.Day != "" && !hasDay(item, filter.Day) {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func hasDay(item model.ClassCatalogItem, day string) bool {
	for _, ts := range item.TimeSlots {
		if ts.Day == day {
			return true
		}
	}
	return false
}

func matchesQuery(item model.ClassCatalogItem, query string) bool {
	fields := []string{item.Name, item.TeacherName, item.SubjectName}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	for _, ts := range item.TimeSlots {
		if strings.Contains(strings.ToLower(ts.Day), query) || strings.Contains(strings.ToLower(ts.Slot), query) {
			return true
		}
	}
	return false
}

// Occupancy возвращает заполненность класса в процентах (не больше 100).
// ok=false, если бэкенд не прислал число записавшихся или лимит не задан.
func Occupancy(item model.ClassCatalogItem) (int, bool) {
	if item.EnrolledCount == nil || item.MaxStudents <= 0 {
		return 0, false
	}
	percent := int(math.Round(float64(*item.EnrolledCount) / float64(item.MaxStudents) * 100))
	if percent > 100 {
		percent = 100
	}
	return percent, true
}
