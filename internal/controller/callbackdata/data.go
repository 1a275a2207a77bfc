// Package callbackdata кодирует данные inline кнопок: "действие:арг1:арг2".
// Telegram ограничивает callback data 64 байтами.
package callbackdata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxLength лимит Telegram на длину callback data
const MaxLength = 64

const (
	separator  = ":"
	dateLayout = "20060102"
)

// Action тип нажатой кнопки
type Action string

const (
	Noop Action = "noop"

	Week      Action = "wk" // wk:20240101 - неделя, содержащая дату
	WeekImage Action = "wi" // wi:20240101 - картинка недели
	Month     Action = "mo" // mo:20240101
	Teaching  Action = "tw" // tw:20240101 - неделя преподавания
	ICS       Action = "ics"
	MyClasses Action = "my"

	Catalog       Action = "cat" // cat:<индекс предмета>:<день недели>:<страница>, -1 = без фильтра
	Enroll        Action = "en"  // en:<classID> - экран подтверждения
	EnrollConfirm Action = "enc" // enc:<classID>
	Cancel        Action = "cx"  // cx:<classID> - экран подтверждения
	CancelConfirm Action = "cxc" // cxc:<classID>
)

var (
	ErrInvalidFormat = errors.New("invalid callback data")
	ErrTooLong       = errors.New("callback data is too long")
)

// Data разобранные данные кнопки
type Data struct {
	Action Action
	Args   []string
}

// New собирает данные кнопки
func New(action Action, args ...string) Data {
	return Data{Action: action, Args: args}
}

// String кодирует данные для отправки в Telegram
func (d Data) String() string {
	if len(d.Args) == 0 {
		return string(d.Action)
	}
	return string(d.Action) + separator + strings.Join(d.Args, separator)
}

// Encode кодирует данные и проверяет лимит длины
func (d Data) Encode() (string, error) {
	s := d.String()
	if len(s) > MaxLength {
		return "", fmt.Errorf("%s: %w", d.Action, ErrTooLong)
	}
	return s, nil
}

// Parse разбирает callback data
func Parse(s string) (Data, error) {
	if s == "" {
		return Data{}, ErrInvalidFormat
	}
	parts := strings.Split(s, separator)
	if parts[0] == "" {
		return Data{}, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}
	return Data{Action: Action(parts[0]), Args: parts[1:]}, nil
}

// Arg возвращает i-й аргумент
func (d Data) Arg(i int) (string, error) {
	if i < 0 || i >= len(d.Args) || d.Args[i] == "" {
		return "", fmt.Errorf("%s: missing argument %d: %w", d.Action, i, ErrInvalidFormat)
	}
	return d.Args[i], nil
}

// Int возвращает i-й аргумент как число
func (d Data) Int(i int) (int, error) {
	s, err := d.Arg(i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: argument %d: %w", d.Action, i, ErrInvalidFormat)
	}
	return n, nil
}

// Date возвращает i-й аргумент как дату (полночь в loc)
func (d Data) Date(i int, loc *time.Location) (time.Time, error) {
	s, err := d.Arg(i)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: argument %d: %w", d.Action, i, ErrInvalidFormat)
	}
	return t, nil
}

// FormatDate кодирует дату для аргумента
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// WeekAt кнопка недели, содержащей t
func WeekAt(t time.Time) string {
	return New(Week, FormatDate(t)).String()
}

// WeekImageAt кнопка картинки недели
func WeekImageAt(t time.Time) string {
	return New(WeekImage, FormatDate(t)).String()
}

// MonthAt кнопка месяца, содержащего t
func MonthAt(t time.Time) string {
	return New(Month, FormatDate(t)).String()
}

// TeachingAt кнопка недели преподавания
func TeachingAt(t time.Time) string {
	return New(Teaching, FormatDate(t)).String()
}

// CatalogPage кнопка страницы каталога с фильтрами
func CatalogPage(subject, day, page int) string {
	return New(Catalog, strconv.Itoa(subject), strconv.Itoa(day), strconv.Itoa(page)).String()
}

// ForClass кнопка действия над классом. ID класса приходит с бэкенда,
// поэтому длина проверяется: Telegram отклоняет клавиатуру целиком.
func ForClass(action Action, classID string) (string, error) {
	return New(action, classID).Encode()
}
