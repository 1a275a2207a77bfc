package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"go.uber.org/zap"
)

// Classes возвращает каталог открытых классов
func (c *Client) Classes(ctx context.Context, token string) ([]model.ClassCatalogItem, error) {
	var body json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/classes/getall-class", token, nil, &body); err != nil {
		return nil, fmt.Errorf("get classes: %w", err)
	}

	items, dropped, err := decodeCatalog(body)
	if err != nil {
		return nil, fmt.Errorf("get classes: %w", err)
	}
	c.logDropped("classes", dropped)
	return items, nil
}

// Subjects возвращает список предметов для фильтров каталога
func (c *Client) Subjects(ctx context.Context, token string) ([]model.SubjectItem, error) {
	var body json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/subjects/getall-subject", token, nil, &body); err != nil {
		return nil, fmt.Errorf("get subjects: %w", err)
	}

	items, dropped, err := decodeSubjects(body)
	if err != nil {
		return nil, fmt.Errorf("get subjects: %w", err)
	}
	c.logDropped("subjects", dropped)
	return items, nil
}

func (c *Client) logDropped(resource string, dropped int) {
	if dropped == 0 {
		return
	}
	c.logger.Warn("Dropped invalid records from backend response",
		zap.String("resource", resource),
		zap.Int("dropped", dropped))
}
