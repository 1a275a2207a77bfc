package schedule

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

// Ошибки данных расписания. Движок на них не падает: слот просто пропускается.
var (
	ErrUnrecognizedDayLabel = errors.New("unrecognized day label")
	ErrMalformedTimeRange   = errors.New("malformed time range")
)

// Ошибки вызывающего кода (нарушение контракта)
var (
	ErrInvalidWindow  = errors.New("window end is before window start")
	ErrNegativeCutoff = errors.New("cancellation cutoff is negative")
)

// SlotError описывает слот, исключённый из расчёта
type SlotError struct {
	EntryIndex int
	SlotIndex  int
	ClassName  string
	Slot       model.TimeSlot
	Err        error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("class %q slot #%d (%s %s): %v", e.ClassName, e.SlotIndex, e.Slot.Day, e.Slot.Slot, e.Err)
}

func (e *SlotError) Unwrap() error {
	return e.Err
}
