package screens

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/controller/callbackdata"
	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// Week экран недели с навигацией. teaching - неделя преподавания (/teaching)
func Week(view *service.CalendarView, teaching bool, now time.Time) Screen {
	title := "Lịch học tuần"
	at := callbackdata.WeekAt
	if teaching {
		title = "Lịch giảng dạy tuần"
		at = callbackdata.TeachingAt
	}

	start := view.WindowStart
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("◀️ Tuần trước", at(start.AddDate(0, 0, -7))),
			keyboard.Button("Hôm nay", at(now)),
			keyboard.Button("Tuần sau ▶️", at(start.AddDate(0, 0, 7))),
		)
	if !teaching {
		kb.Row(
			keyboard.Button("🖼 Ảnh tuần", callbackdata.WeekImageAt(start)),
			keyboard.Button("🗓 Tháng", callbackdata.MonthAt(start)),
		)
	}
	kb.Row(keyboard.Button("📥 Xuất lịch (.ics)", callbackdata.New(callbackdata.ICS).String()))

	return Screen{
		Text:     fit(formatting.FormatCalendar(title, view, now)),
		Keyboard: kb.Build(),
	}
}

// Month экран месяца. anchor - любая дата месяца
func Month(view *service.CalendarView, anchor, now time.Time) Screen {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	title := fmt.Sprintf("Lịch tháng %d/%d", first.Month(), first.Year())

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("◀️ Tháng trước", callbackdata.MonthAt(first.AddDate(0, -1, 0))),
			keyboard.Button("Tháng sau ▶️", callbackdata.MonthAt(first.AddDate(0, 1, 0))),
		).
		Row(keyboard.Button("📅 Tuần này", callbackdata.WeekAt(now)))

	return Screen{
		Text:     fit(formatting.FormatCalendar(title, view, now)),
		Keyboard: kb.Build(),
	}
}

// Today экран занятий на сегодня
func Today(view *service.CalendarView, now time.Time) Screen {
	return Screen{
		Text: fit(formatting.FormatCalendar("Lịch hôm nay", view, now)),
		Keyboard: keyboard.NewBuilder().
			Row(keyboard.Button("📅 Cả tuần", callbackdata.WeekAt(now))).
			Build(),
	}
}

// ImageCaption подпись к картинке недели
func ImageCaption(view *service.CalendarView) string {
	return fmt.Sprintf("🖼 Lịch tuần %s", formatting.FormatPeriod(view.WindowStart, view.WindowEnd))
}

// Empty клавиатура без кнопок, убирает старые кнопки при редактировании
func Empty() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{}}
}
