// Package screens собирает текст и клавиатуру экранов бота
package screens

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// MaxMessageLength лимит Telegram на длину текста сообщения
const MaxMessageLength = 4096

// Screen текст сообщения с inline клавиатурой
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// fit обрезает текст по последней целой строке, чтобы влезть в лимит Telegram
func fit(text string) string {
	if len(text) <= MaxMessageLength {
		return text
	}
	const tail = "\n…"
	cut := text[:MaxMessageLength-len(tail)]
	if i := strings.LastIndex(cut, "\n"); i > 0 {
		cut = cut[:i]
	}
	return cut + tail
}
