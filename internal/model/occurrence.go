package model

import (
	"time"

	"github.com/google/uuid"
)

// CalendarOccurrence конкретное занятие в календаре
type CalendarOccurrence struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Day         string    `json:"day"`
	Slot        string    `json:"slot"`
	ClassID     string    `json:"class_id,omitempty"`
	ClassName   string    `json:"class_name"`
	SubjectName string    `json:"subject"`
	TeacherName string    `json:"teacher"`
}

// Duration длительность занятия
func (o *CalendarOccurrence) Duration() time.Duration {
	return o.End.Sub(o.Start)
}
