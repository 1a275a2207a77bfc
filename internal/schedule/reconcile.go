package schedule

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

// nameKey структурный ключ класса для старых записей без classId.
// Два разных класса с одинаковыми названием, предметом и преподавателем
// неотличимы: одна такая запись отметит оба класса как записанные.
// Записи с classId в этот индекс не попадают, даже если такого classId
// нет в каталоге: класс с устаревшим ID по названию не найдётся.
type nameKey struct {
	className string
	subject   string
	teacher   string
}

// Reconcile сопоставляет каталог классов с расписанием студента и для каждого
// класса каталога считает, записан ли студент и можно ли ещё отменить запись.
//
// Сначала ищется совпадение по classId, затем (только для записей без classId)
// по названию, предмету и преподавателю. Отмена разрешена строго раньше, чем
// за cutoff до ближайшего занятия; если будущих занятий нет - разрешена всегда.
func Reconcile(catalog []model.ClassCatalogItem, enrolled []model.ScheduleEntry, cutoff time.Duration, now time.Time) (map[string]model.EnrollmentView, error) {
	if cutoff < 0 {
		return nil, fmt.Errorf("reconcile: %w (%s)", ErrNegativeCutoff, cutoff)
	}

	byID := make(map[string]int, len(enrolled))
	byName := make(map[nameKey]int)
	for i, entry := range enrolled {
		if entry.HasClassID() {
			if _, exists := byID[entry.ClassID]; !exists {
				byID[entry.ClassID] = i
			}
			continue
		}
		key := nameKey{className: entry.ClassName, subject: entry.SubjectName, teacher: entry.TeacherName}
		if _, exists := byName[key]; !exists {
			byName[key] = i
		}
	}

	views := make(map[string]model.EnrollmentView, len(catalog))
	for _, item := range catalog {
		if item.ID == "" {
			continue
		}
		if _, seen := views[item.ID]; seen {
			continue
		}

		view := model.EnrollmentView{ClassID: item.ID}

		idx, kind := matchEntry(item, byID, byName)
		if kind != model.MatchNone {
			state := evaluate(enrolled[idx], cutoff, now)
			view.IsEnrolled = true
			view.MatchedBy = kind
			view.FirstUpcoming = state.FirstUpcoming
			view.CancelAllowed = state.CancelAllowed
		}

		views[item.ID] = view
	}

	return views, nil
}

func matchEntry(item model.ClassCatalogItem, byID map[string]int, byName map[nameKey]int) (int, model.MatchKind) {
	if idx, ok := byID[item.ID]; ok {
		return idx, model.MatchByID
	}
	key := nameKey{className: item.Name, subject: item.SubjectName, teacher: item.TeacherName}
	if idx, ok := byName[key]; ok {
		return idx, model.MatchByName
	}
	return -1, model.MatchNone
}

// EvaluateCancellation считает ближайшее занятие, дедлайн и возможность отмены
// для одного класса из расписания студента
func EvaluateCancellation(entry model.ScheduleEntry, cutoff time.Duration, now time.Time) (model.EnrolledClass, error) {
	if cutoff < 0 {
		return model.EnrolledClass{}, fmt.Errorf("evaluate cancellation: %w (%s)", ErrNegativeCutoff, cutoff)
	}
	return evaluate(entry, cutoff, now), nil
}

func evaluate(entry model.ScheduleEntry, cutoff time.Duration, now time.Time) model.EnrolledClass {
	result := model.EnrolledClass{Entry: entry, CancelAllowed: true}

	first, ok := FirstUpcomingOccurrence(entry, now)
	if !ok {
		return result
	}

	deadline := first.Add(-cutoff)
	result.FirstUpcoming = &first
	result.Cutoff = &deadline
	result.CancelAllowed = now.Before(deadline)
	return result
}
