package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `telegram_id, chat_id, user_id, name, email, role, token, reminders_enabled, created_at, updated_at`

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Upsert сохраняет сессию после логина. Флаг напоминаний при повторном логине не сбрасывается.
func (r *SessionRepository) Upsert(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO student_sessions (telegram_id, chat_id, user_id, name, email, role, token, reminders_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (telegram_id) DO UPDATE
		SET chat_id = EXCLUDED.chat_id,
		    user_id = EXCLUDED.user_id,
		    name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    role = EXCLUDED.role,
		    token = EXCLUDED.token,
		    updated_at = NOW()
		RETURNING reminders_enabled, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		s.TelegramID,
		s.ChatID,
		s.UserID,
		s.Name,
		s.Email,
		s.Role,
		s.Token,
		s.RemindersEnabled,
	).Scan(&s.RemindersEnabled, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// GetByTelegramID возвращает сессию пользователя или nil, если он не залогинен
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM student_sessions WHERE telegram_id = $1`

	s, err := scanSession(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by telegram id: %w", err)
	}

	return s, nil
}

// Delete удаляет сессию (logout). Возвращает false, если сессии не было.
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM student_sessions WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return affected > 0, nil
}

// SetReminders включает или выключает ежедневные напоминания
func (r *SessionRepository) SetReminders(ctx context.Context, telegramID int64, enabled bool) error {
	query := `
		UPDATE student_sessions
		SET reminders_enabled = $1, updated_at = NOW()
		WHERE telegram_id = $2
	`

	affected, err := r.ExecAffected(ctx, query, enabled, telegramID)
	if err != nil {
		return fmt.Errorf("set reminders: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set reminders: session %d not found", telegramID)
	}

	return nil
}

// ListReminderEnabled возвращает все сессии с включёнными напоминаниями
func (r *SessionRepository) ListReminderEnabled(ctx context.Context) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM student_sessions WHERE reminders_enabled ORDER BY telegram_id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reminder sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.TelegramID,
		&s.ChatID,
		&s.UserID,
		&s.Name,
		&s.Email,
		&s.Role,
		&s.Token,
		&s.RemindersEnabled,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
