package common

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/screens"
	"github.com/Freeeeeet/classroom_bot/internal/export"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/render"
	"github.com/Freeeeeet/classroom_bot/internal/schedule"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
)

// ExportWeeks на сколько недель вперёд выгружается календарь
const ExportWeeks = 16

// SendWeekImage рисует неделю и отправляет картинкой
func SendWeekImage(ctx context.Context, b *bot.Bot, chatID int64, view *service.CalendarView, now time.Time) error {
	png, err := render.WeekImage(view.WindowStart, view.Occurrences, now)
	if err != nil {
		return fmt.Errorf("render week: %w", err)
	}
	return SendPhoto(ctx, b, chatID, png, screens.ImageCaption(view))
}

// SendCalendarFile выгружает расписание в .ics на ExportWeeks недель с текущей
func SendCalendarFile(ctx context.Context, b *bot.Bot, chatID int64, entries []model.ScheduleEntry, weekStart time.Weekday, now time.Time) error {
	start, _ := schedule.WeekWindow(now, weekStart)
	end := start.AddDate(0, 0, 7*ExportWeeks-1)

	ics, err := export.Calendar(entries, start, end, now)
	if err != nil {
		return fmt.Errorf("export calendar: %w", err)
	}

	caption := fmt.Sprintf("📥 Lịch học %s\nMở file để thêm vào Google Calendar, Outlook hoặc Lịch iPhone.",
		formatting.FormatPeriod(start, end))
	return SendDocument(ctx, b, chatID, "lich-hoc.ics", []byte(ics), caption)
}
