package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
)

// FormatSlots список правил класса: "Thứ 2 08:00-09:30"
func FormatSlots(slots []model.TimeSlot) string {
	if len(slots) == 0 {
		return "chưa có lịch"
	}
	parts := make([]string, 0, len(slots))
	for _, ts := range slots {
		s := fmt.Sprintf("%s %s", ts.Day, ts.Slot)
		switch {
		case ts.Start != nil && ts.End != nil:
			s += fmt.Sprintf(" (%s - %s)", FormatDate(*ts.Start), FormatDate(*ts.End))
		case ts.Start != nil:
			s += fmt.Sprintf(" (từ %s)", FormatDate(*ts.Start))
		case ts.End != nil:
			s += fmt.Sprintf(" (đến %s)", FormatDate(*ts.End))
		}
		parts = append(parts, html.EscapeString(s))
	}
	return strings.Join(parts, "; ")
}

// FormatCatalogClass класс каталога для списка
func FormatCatalogClass(class service.CatalogClass, index int) string {
	item := class.Item

	occupancy := fmt.Sprintf("tối đa %d học viên", item.MaxStudents)
	if class.HasOccupancy {
		occupancy = fmt.Sprintf("%d/%d học viên (%d%%)", *item.EnrolledCount, item.MaxStudents, class.Occupancy)
	}

	return fmt.Sprintf("%d. <b>%s</b> - %s\n"+
		"   👨‍🏫 GV: %s\n"+
		"   🗓 %s\n"+
		"   👥 %s",
		index,
		html.EscapeString(item.Name),
		html.EscapeString(item.SubjectName),
		html.EscapeString(item.TeacherName),
		FormatSlots(item.TimeSlots),
		occupancy,
	)
}

// FormatClassDetails экран подтверждения записи
func FormatClassDetails(item *model.ClassCatalogItem) string {
	return fmt.Sprintf("📝 <b>Đăng ký lớp học</b>\n\n"+
		"🏫 Lớp: <b>%s</b>\n"+
		"📚 Môn: %s\n"+
		"👨‍🏫 GV: %s\n"+
		"🗓 Lịch: %s\n\n"+
		"Xác nhận đăng ký?",
		html.EscapeString(item.Name),
		html.EscapeString(item.SubjectName),
		html.EscapeString(item.TeacherName),
		FormatSlots(item.TimeSlots),
	)
}

// FormatEnrolledClass класс из списка записей студента
func FormatEnrolledClass(ec model.EnrolledClass, index int, now time.Time) string {
	entry := ec.Entry

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. <b>%s</b> - %s\n   👨‍🏫 GV: %s\n   🗓 %s\n",
		index,
		html.EscapeString(entry.ClassName),
		html.EscapeString(entry.SubjectName),
		html.EscapeString(entry.TeacherName),
		FormatSlots(entry.TimeSlots),
	)
	sb.WriteString("   ")
	sb.WriteString(FormatCancelState(ec, now))
	return sb.String()
}

// FormatCancelState ближайшее занятие и статус отмены
func FormatCancelState(ec model.EnrolledClass, now time.Time) string {
	if ec.FirstUpcoming == nil {
		return "⏭ Không còn buổi học sắp tới, có thể hủy."
	}

	next := fmt.Sprintf("⏭ Buổi gần nhất: %s", FormatDateTime(*ec.FirstUpcoming))
	if ec.CancelAllowed {
		return fmt.Sprintf("%s\n   ✅ Có thể hủy trước %s (còn %s)",
			next, FormatDateTime(*ec.Cutoff), FormatDuration(ec.Cutoff.Sub(now)))
	}
	return fmt.Sprintf("%s\n   🔒 Đã hết hạn hủy (%s)", next, FormatDateTime(*ec.Cutoff))
}
