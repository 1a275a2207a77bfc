package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"go.uber.org/zap"
)

type enrollmentRequest struct {
	ClassID string `json:"classId"`
}

// MySchedule возвращает классы, на которые записан студент
func (c *Client) MySchedule(ctx context.Context, token, studentID string) ([]model.ScheduleEntry, error) {
	var body json.RawMessage
	path := "/api/enrollments/student/" + url.PathEscape(studentID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &body); err != nil {
		return nil, fmt.Errorf("get student schedule: %w", err)
	}

	entries, dropped, err := DecodeSchedule(body)
	if err != nil {
		return nil, fmt.Errorf("get student schedule: %w", err)
	}
	c.logDropped("enrollments", dropped)
	return entries, nil
}

// Enroll записывает студента на класс.
// Старые версии бэкенда не знают /enrollments/{id}: на 404 повторяем с {classId} в теле.
func (c *Client) Enroll(ctx context.Context, token, classID string) error {
	err := c.do(ctx, http.MethodPost, "/api/enrollments/"+url.PathEscape(classID), token, nil, nil)
	if IsNotFound(err) {
		c.logger.Debug("Falling back to body-based enroll", zap.String("class_id", classID))
		err = c.do(ctx, http.MethodPost, "/api/enrollments", token, enrollmentRequest{ClassID: classID}, nil)
	}
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	return nil
}

// CancelEnrollment отменяет запись студента на класс, с тем же запасным маршрутом, что и Enroll
func (c *Client) CancelEnrollment(ctx context.Context, token, classID string) error {
	err := c.do(ctx, http.MethodDelete, "/api/enrollments/"+url.PathEscape(classID), token, nil, nil)
	if IsNotFound(err) {
		c.logger.Debug("Falling back to body-based cancel", zap.String("class_id", classID))
		err = c.do(ctx, http.MethodDelete, "/api/enrollments", token, enrollmentRequest{ClassID: classID}, nil)
	}
	if err != nil {
		return fmt.Errorf("cancel enrollment: %w", err)
	}
	return nil
}

// TeachingSchedule возвращает расписание преподавания с границами слотов
func (c *Client) TeachingSchedule(ctx context.Context, token string) ([]model.ScheduleEntry, error) {
	var body json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/schedule/teaching-schedule", token, nil, &body); err != nil {
		return nil, fmt.Errorf("get teaching schedule: %w", err)
	}

	entries, dropped, err := DecodeSchedule(body)
	if err != nil {
		return nil, fmt.Errorf("get teaching schedule: %w", err)
	}
	c.logDropped("teaching-schedule", dropped)
	return entries, nil
}
