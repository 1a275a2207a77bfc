package model

import "time"

// Роли пользователей бэкенда
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Session авторизованная сессия пользователя Telegram в бэкенде учебного центра
type Session struct {
	TelegramID       int64     `json:"telegram_id"`
	ChatID           int64     `json:"chat_id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Token            string    `json:"-"`
	RemindersEnabled bool      `json:"reminders_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasRole проверяет, входит ли роль сессии в список разрешённых
func (s *Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// IsStudent проверяет, что пользователь - студент
func (s *Session) IsStudent() bool {
	return s.Role == RoleStudent
}
