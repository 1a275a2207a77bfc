package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния входа в систему
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"
)

// Ключи временных данных диалога
const (
	KeyEmail = "email"

	// KeyCatalogQuery строка поиска /classes для кнопок каталога
	KeyCatalogQuery = "catalog_query"
)

// DefaultTTL через сколько незавершённый диалог забывается
const DefaultTTL = 10 * time.Minute

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]string
	UpdatedAt time.Time
}
