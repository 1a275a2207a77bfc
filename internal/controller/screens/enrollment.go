package screens

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/controller/callbackdata"
	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/schedule"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// CatalogPageSize классов на одной странице каталога
const CatalogPageSize = 5

// All значение фильтра "без фильтра"
const All = service.AllSubjects

// CatalogState фильтры и страница каталога из callback data.
// Строка поиска в callback data не помещается и хранится отдельно.
type CatalogState struct {
	Subject int // индекс в CatalogView.Subjects
	Day     int // time.Weekday
	Page    int
}

// DefaultCatalog каталог без фильтров
func DefaultCatalog() CatalogState {
	return CatalogState{Subject: All, Day: All}
}

// Filter фильтры каталога для сервиса
func (s CatalogState) Filter(query string) service.CatalogQuery {
	filter := service.CatalogQuery{Query: query, Subject: s.Subject}
	if s.Subject < 0 {
		filter.Subject = All
	}
	if s.Day >= int(time.Sunday) && s.Day <= int(time.Saturday) {
		filter.Day = schedule.DayLabel(time.Weekday(s.Day))
	}
	return filter
}

func (s CatalogState) with(subject, day, page int) string {
	return callbackdata.CatalogPage(subject, day, page)
}

// Catalog экран каталога открытых классов. Классы в view уже отфильтрованы.
func Catalog(view *service.CatalogView, state CatalogState) Screen {
	classes := view.Classes

	pages := max(1, (len(classes)+CatalogPageSize-1)/CatalogPageSize)
	page := min(max(state.Page, 0), pages-1)
	from := page * CatalogPageSize
	to := min(from+CatalogPageSize, len(classes))

	var sb strings.Builder
	sb.WriteString("📚 <b>Đăng ký lớp học</b>\n")
	if view.Enrolled > 0 {
		fmt.Fprintf(&sb, "Bạn đã đăng ký %d lớp (xem /myclasses).\n", view.Enrolled)
	}
	if view.Query != "" {
		fmt.Fprintf(&sb, "Tìm: <b>%s</b> (/classes để bỏ tìm kiếm)\n", html.EscapeString(view.Query))
	}
	if view.Subject != "" {
		fmt.Fprintf(&sb, "Môn: <b>%s</b>\n", html.EscapeString(view.Subject))
	}
	if state.Day >= 0 && state.Day <= 6 {
		fmt.Fprintf(&sb, "Ngày: <b>%s</b>\n", schedule.DayLabel(time.Weekday(state.Day)))
	}
	if view.ScheduleUnavailable {
		sb.WriteString("⚠️ Không tải được lịch của bạn, danh sách có thể gồm lớp đã đăng ký.\n")
	}

	kb := keyboard.NewBuilder()
	if len(classes) == 0 {
		sb.WriteString("\nKhông có lớp nào phù hợp.")
	}
	for i, c := range classes[from:to] {
		sb.WriteString("\n")
		sb.WriteString(formatting.FormatCatalogClass(c, from+i+1))
		sb.WriteString("\n")
		if button, ok := classButton(fmt.Sprintf("📝 Đăng ký %s", c.Item.Name), callbackdata.Enroll, c.Item.ID); ok {
			kb.Row(button)
		}
	}

	if pages > 1 {
		var nav []models.InlineKeyboardButton
		if page > 0 {
			nav = append(nav, keyboard.Button("◀️", state.with(state.Subject, state.Day, page-1)))
		}
		nav = append(nav, keyboard.Button(fmt.Sprintf("%d/%d", page+1, pages), callbackdata.New(callbackdata.Noop).String()))
		if page < pages-1 {
			nav = append(nav, keyboard.Button("▶️", state.with(state.Subject, state.Day, page+1)))
		}
		kb.Row(nav...)
	}

	kb.Grid(2, subjectButtons(view.Subjects, state)...)
	kb.Grid(4, dayButtons(state)...)

	return Screen{Text: fit(strings.TrimRight(sb.String(), "\n")), Keyboard: kb.Build()}
}

func subjectButtons(subjects []string, state CatalogState) []models.InlineKeyboardButton {
	if len(subjects) == 0 {
		return nil
	}
	buttons := []models.InlineKeyboardButton{
		keyboard.Button(mark("Tất cả môn", state.Subject == All), state.with(All, state.Day, 0)),
	}
	for i, name := range subjects {
		buttons = append(buttons, keyboard.Button(mark(name, state.Subject == i), state.with(i, state.Day, 0)))
	}
	return buttons
}

func dayButtons(state CatalogState) []models.InlineKeyboardButton {
	buttons := []models.InlineKeyboardButton{
		keyboard.Button(mark("Mọi ngày", state.Day == All), state.with(state.Subject, All, 0)),
	}
	for _, label := range schedule.DayLabels(time.Monday) {
		wd, _ := schedule.ResolveDay(label)
		buttons = append(buttons, keyboard.Button(mark(label, state.Day == int(wd)), state.with(state.Subject, int(wd), 0)))
	}
	return buttons
}

// classButton кнопка действия над классом. Класс со слишком длинным ID
// остаётся без кнопки.
func classButton(text string, action callbackdata.Action, classID string) (models.InlineKeyboardButton, bool) {
	data, err := callbackdata.ForClass(action, classID)
	if err != nil {
		return models.InlineKeyboardButton{}, false
	}
	return keyboard.Button(text, data), true
}

func mark(text string, selected bool) string {
	if selected {
		return "✅ " + text
	}
	return text
}

// EnrollConfirm экран подтверждения записи
func EnrollConfirm(item *model.ClassCatalogItem) Screen {
	text := formatting.FormatClassDetails(item)
	back := keyboard.Button("↩️ Quay lại", callbackdata.CatalogPage(All, All, 0))

	kb := keyboard.NewBuilder()
	if confirm, ok := classButton("✅ Xác nhận", callbackdata.EnrollConfirm, item.ID); ok {
		kb.Row(confirm, back)
	} else {
		text += "\n\n⚠️ Không thể đăng ký lớp này qua bot."
		kb.Row(back)
	}

	return Screen{Text: text, Keyboard: kb.Build()}
}

// Enrolled экран "мои классы"
func Enrolled(classes []model.EnrolledClass, cutoff time.Duration, now time.Time) Screen {
	var sb strings.Builder
	sb.WriteString("🎓 <b>Lớp đã đăng ký</b>\n")
	fmt.Fprintf(&sb, "Được hủy trước buổi học đầu tiên sắp tới ít nhất %s.\n", formatting.FormatDuration(cutoff))

	kb := keyboard.NewBuilder()
	if len(classes) == 0 {
		sb.WriteString("\nBạn chưa đăng ký lớp nào. Xem danh sách lớp: /classes")
	}
	for i, ec := range classes {
		sb.WriteString("\n")
		sb.WriteString(formatting.FormatEnrolledClass(ec, i+1, now))
		sb.WriteString("\n")
		if !ec.CancelAllowed {
			continue
		}
		if button, ok := classButton(fmt.Sprintf("❌ Hủy %s", ec.Entry.ClassName), callbackdata.Cancel, ec.Entry.ClassID); ok {
			kb.Row(button)
		}
	}
	kb.Row(keyboard.Button("📚 Đăng ký thêm lớp", callbackdata.CatalogPage(All, All, 0)))

	return Screen{Text: fit(strings.TrimRight(sb.String(), "\n")), Keyboard: kb.Build()}
}

// CancelConfirm экран подтверждения отмены записи
func CancelConfirm(ec *model.EnrolledClass, now time.Time) Screen {
	back := keyboard.Button("↩️ Quay lại", callbackdata.New(callbackdata.MyClasses).String())

	text := fmt.Sprintf("❌ <b>Hủy đăng ký lớp %s</b> - %s\n\n%s",
		html.EscapeString(ec.Entry.ClassName),
		html.EscapeString(ec.Entry.SubjectName),
		formatting.FormatCancelState(*ec, now),
	)

	kb := keyboard.NewBuilder()
	confirm, ok := classButton("✅ Xác nhận hủy", callbackdata.CancelConfirm, ec.Entry.ClassID)
	if ec.CancelAllowed && ok {
		text += "\n\nBạn chắc chắn muốn hủy?"
		kb.Row(confirm, back)
	} else {
		kb.Row(back)
	}

	return Screen{Text: text, Keyboard: kb.Build()}
}
