package model

// ClassCatalogItem открытый для записи класс
type ClassCatalogItem struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	SubjectName   string     `json:"subject"`
	TeacherName   string     `json:"teacher"`
	MaxStudents   int        `json:"maxStudents"`
	TimeSlots     []TimeSlot `json:"timeSlots"`
	EnrolledCount *int       `json:"enrolledCount,omitempty"`
}

// SubjectItem предмет для фильтра каталога
type SubjectItem struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
