package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// User пользователь бэкенда, вернувшийся при логине
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// LoginResult токен и профиль пользователя
type LoginResult struct {
	Token string
	User  User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token" validate:"notblank"`
	User  struct {
		ID    string `json:"_id"`
		AltID string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role" validate:"notblank"`
	} `json:"user"`
}

// Login выполняет POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("login: %w: %v", ErrUnexpectedPayload, err)
	}

	id := resp.User.ID
	if id == "" {
		id = resp.User.AltID
	}
	if id == "" {
		return nil, fmt.Errorf("login: %w: user id is missing", ErrUnexpectedPayload)
	}

	return &LoginResult{
		Token: resp.Token,
		User: User{
			ID:    id,
			Name:  strings.TrimSpace(resp.User.Name),
			Email: strings.TrimSpace(resp.User.Email),
			Role:  strings.ToLower(strings.TrimSpace(resp.User.Role)),
		},
	}, nil
}
