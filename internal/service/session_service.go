package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Freeeeeet/classroom_bot/internal/api"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"go.uber.org/zap"
)

type SessionService struct {
	store   SessionStore
	backend Backend
	logger  *zap.Logger
}

func NewSessionService(store SessionStore, backend Backend, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:   store,
		backend: backend,
		logger:  logger,
	}
}

// Login авторизует пользователя Telegram в бэкенде и сохраняет сессию
func (s *SessionService) Login(ctx context.Context, telegramID, chatID int64, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		code := api.StatusCode(err)
		if code == http.StatusBadRequest || code == http.StatusUnauthorized || code == http.StatusNotFound {
			return nil, fmt.Errorf("login: %w: %w", ErrInvalidCredentials, err)
		}
		return nil, backendError("login", err)
	}

	session := &model.Session{
		TelegramID: telegramID,
		ChatID:     chatID,
		UserID:     res.User.ID,
		Name:       res.User.Name,
		Email:      res.User.Email,
		Role:       res.User.Role,
		Token:      res.Token,
	}
	if session.Email == "" {
		session.Email = email
	}

	if err := s.store.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", session.UserID),
		zap.String("role", session.Role),
	)

	return session, nil
}

// Get возвращает сессию или ErrNotLoggedIn
func (s *SessionService) Get(ctx context.Context, telegramID int64) (*model.Session, error) {
	session, err := s.store.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrNotLoggedIn
	}
	return session, nil
}

// Logout удаляет сессию. false - если пользователь и так не был залогинен.
func (s *SessionService) Logout(ctx context.Context, telegramID int64) (bool, error) {
	deleted, err := s.store.Delete(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("logout: %w", err)
	}
	if deleted {
		s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	}
	return deleted, nil
}

// SetReminders включает или выключает ежедневные напоминания
func (s *SessionService) SetReminders(ctx context.Context, telegramID int64, enabled bool) error {
	if _, err := s.Get(ctx, telegramID); err != nil {
		return err
	}
	if err := s.store.SetReminders(ctx, telegramID, enabled); err != nil {
		return fmt.Errorf("set reminders: %w", err)
	}

	s.logger.Info("Reminders toggled",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("enabled", enabled),
	)
	return nil
}

// ReminderRecipients возвращает сессии с включёнными напоминаниями
func (s *SessionService) ReminderRecipients(ctx context.Context) ([]*model.Session, error) {
	sessions, err := s.store.ListReminderEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminder recipients: %w", err)
	}
	return sessions, nil
}

// RequireRole проверяет, что роль сессии входит в список разрешённых
func RequireRole(session *model.Session, roles ...string) error {
	if session == nil {
		return ErrNotLoggedIn
	}
	if !session.HasRole(roles...) {
		return fmt.Errorf("role %q: %w", session.Role, ErrForbidden)
	}
	return nil
}
