package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

// ErrUnexpectedPayload тело ответа не похоже ни на массив, ни на {data}/{items}
var ErrUnexpectedPayload = errors.New("unexpected payload shape")

const (
	notBlankTag = "notblank"
	isoDateTag  = "isodate"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// в ошибках используем имена из json-тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = v.RegisterValidation(isoDateTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := parseDate(s)
		return err == nil
	})

	return v
}

// parseDate принимает "2006-01-02" и RFC 3339 (в том числе с миллисекундами)
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func optionalDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

// unwrapList принимает голый массив или объект {data: [...]} / {items: [...]}
func unwrapList(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var list []json.RawMessage
	if body[0] == '[' {
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return list, nil
	}

	var wrapped struct {
		Data  json.RawMessage `json:"data"`
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode wrapper: %w", err)
	}
	for _, inner := range []json.RawMessage{wrapped.Data, wrapped.Items} {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '[' {
			if err := json.Unmarshal(inner, &list); err != nil {
				return nil, fmt.Errorf("decode list: %w", err)
			}
			return list, nil
		}
	}
	return nil, ErrUnexpectedPayload
}

// ref поле, которое бэкенд отдаёт строкой или populated-объектом {_id, name}
type ref struct {
	ID   string
	Name string
}

func (r *ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = ref{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ref{ID: s, Name: s}
		return nil
	case data[0] == '{':
		var obj struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = ref{ID: obj.ID, Name: obj.Name}
		return nil
	default:
		return fmt.Errorf("unsupported reference %s", string(data))
	}
}

type slotRecord struct {
	Day   string `json:"day" validate:"notblank"`
	Slot  string `json:"slot" validate:"notblank"`
	Start string `json:"start" validate:"omitempty,isodate"`
	End   string `json:"end" validate:"omitempty,isodate"`
}

type scheduleRecord struct {
	ClassID   ref               `json:"classId"`
	ClassName string            `json:"className" validate:"notblank"`
	Subject   ref               `json:"subject"`
	Teacher   ref               `json:"teacher"`
	TimeSlots []json.RawMessage `json:"timeSlots"`
}

type classRecord struct {
	ID            string            `json:"_id" validate:"notblank"`
	Name          string            `json:"name" validate:"notblank"`
	Subject       ref               `json:"subject"`
	Teacher       ref               `json:"teacher"`
	MaxStudents   int               `json:"maxStudents" validate:"gte=0"`
	TimeSlots     []json.RawMessage `json:"timeSlots"`
	EnrolledCount *int              `json:"enrolledCount" validate:"omitempty,gte=0"`
}

type subjectRecord struct {
	ID   string `json:"_id" validate:"notblank"`
	Name string `json:"name" validate:"notblank"`
	Code string `json:"code"`
}

// decodeRecord разбирает и валидирует одну запись
func decodeRecord(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	return nil
}

// decodeSlots возвращает валидные слоты и число отброшенных
func decodeSlots(raws []json.RawMessage) ([]model.TimeSlot, int) {
	slots := make([]model.TimeSlot, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		var rec slotRecord
		if err := decodeRecord(raw, &rec); err != nil {
			dropped++
			continue
		}
		slots = append(slots, model.TimeSlot{
			Day:   strings.TrimSpace(rec.Day),
			Slot:  strings.TrimSpace(rec.Slot),
			Start: optionalDate(rec.Start),
			End:   optionalDate(rec.End),
		})
	}
	return slots, dropped
}

// DecodeSchedule превращает ответ с расписанием (массив или {data}/{items}) в записи движка.
// Возвращает число отброшенных записей и слотов.
func DecodeSchedule(body []byte) ([]model.ScheduleEntry, int, error) {
	raws, err := unwrapList(body)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]model.ScheduleEntry, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		var rec scheduleRecord
		if err := decodeRecord(raw, &rec); err != nil {
			dropped++
			continue
		}
		slots, droppedSlots := decodeSlots(rec.TimeSlots)
		dropped += droppedSlots
		entries = append(entries, model.ScheduleEntry{
			ClassID:     strings.TrimSpace(rec.ClassID.ID),
			ClassName:   strings.TrimSpace(rec.ClassName),
			SubjectName: strings.TrimSpace(rec.Subject.Name),
			TeacherName: strings.TrimSpace(rec.Teacher.Name),
			TimeSlots:   slots,
		})
	}
	return entries, dropped, nil
}

// decodeCatalog превращает ответ со списком классов в каталог
func decodeCatalog(body []byte) ([]model.ClassCatalogItem, int, error) {
	raws, err := unwrapList(body)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.ClassCatalogItem, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		var rec classRecord
		if err := decodeRecord(raw, &rec); err != nil {
			dropped++
			continue
		}
		slots, droppedSlots := decodeSlots(rec.TimeSlots)
		dropped += droppedSlots
		items = append(items, model.ClassCatalogItem{
			ID:            strings.TrimSpace(rec.ID),
			Name:          strings.TrimSpace(rec.Name),
			SubjectName:   strings.TrimSpace(rec.Subject.Name),
			TeacherName:   strings.TrimSpace(rec.Teacher.Name),
			MaxStudents:   rec.MaxStudents,
			TimeSlots:     slots,
			EnrolledCount: rec.EnrolledCount,
		})
	}
	return items, dropped, nil
}

func decodeSubjects(body []byte) ([]model.SubjectItem, int, error) {
	raws, err := unwrapList(body)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.SubjectItem, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		var rec subjectRecord
		if err := decodeRecord(raw, &rec); err != nil {
			dropped++
			continue
		}
		items = append(items, model.SubjectItem{
			ID:   strings.TrimSpace(rec.ID),
			Name: strings.TrimSpace(rec.Name),
			Code: strings.TrimSpace(rec.Code),
		})
	}
	return items, dropped, nil
}
