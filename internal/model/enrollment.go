package model

import "time"

// MatchKind показывает, по какому правилу класс сопоставлен с записью студента
type MatchKind string

const (
	MatchNone   MatchKind = ""
	MatchByID   MatchKind = "id"   // совпал classId
	MatchByName MatchKind = "name" // совпали название, предмет и преподаватель
)

// EnrollmentView состояние записи студента на один класс каталога
type EnrollmentView struct {
	ClassID       string     `json:"class_id"`
	IsEnrolled    bool       `json:"is_enrolled"`
	MatchedBy     MatchKind  `json:"matched_by,omitempty"`
	FirstUpcoming *time.Time `json:"first_upcoming,omitempty"`
	CancelAllowed bool       `json:"cancel_allowed"`
}

// EnrolledClass класс из расписания студента с рассчитанным дедлайном отмены
type EnrolledClass struct {
	Entry         ScheduleEntry
	FirstUpcoming *time.Time
	Cutoff        *time.Time
	CancelAllowed bool
}
