package model

import "time"

// TimeSlot еженедельное правило повторения: день недели + диапазон времени.
// Start и End - необязательные границы действия правила (только дата).
type TimeSlot struct {
	Day   string     `json:"day"`
	Slot  string     `json:"slot"` // "HH:MM-HH:MM"
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// ScheduleEntry набор правил одного класса, на который записан студент
// (или который ведёт преподаватель).
type ScheduleEntry struct {
	ClassID     string     `json:"classId,omitempty"` // может отсутствовать в старых записях
	ClassName   string     `json:"className"`
	SubjectName string     `json:"subject"`
	TeacherName string     `json:"teacher"`
	TimeSlots   []TimeSlot `json:"timeSlots"`
}

// HasClassID сообщает, пришёл ли идентификатор класса с бэкенда
func (e *ScheduleEntry) HasClassID() bool {
	return e.ClassID != ""
}
