package screens

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/classroom_bot/internal/controller/callbackdata"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*3600)

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2024, month, day, hour, 0, 0, 0, ict)
}

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.CallbackData)
		}
	}
	return out
}

func catalogClass(id, name, subject string) service.CatalogClass {
	return service.CatalogClass{Item: model.ClassCatalogItem{
		ID:          id,
		Name:        name,
		SubjectName: subject,
		TeacherName: "Thầy Minh",
		MaxStudents: 20,
		TimeSlots:   []model.TimeSlot{{Day: "Thứ 2", Slot: "08:00-09:30"}},
	}}
}

func TestWeek_Navigation(t *testing.T) {
	view := &service.CalendarView{WindowStart: at(1, 8, 0), WindowEnd: at(1, 14, 23)}
	now := at(1, 10, 9)

	screen := Week(view, false, now)

	data := callbacks(screen.Keyboard)
	assert.Equal(t, []string{
		"wk:20240101", "wk:20240110", "wk:20240115",
		"wi:20240108", "mo:20240108",
		"ics",
	}, data)
	assert.Contains(t, screen.Text, "Lịch học tuần")

	teaching := Week(view, true, now)
	assert.Equal(t, []string{"tw:20240101", "tw:20240110", "tw:20240115", "ics"}, callbacks(teaching.Keyboard))
	assert.Contains(t, teaching.Text, "Lịch giảng dạy tuần")
}

func TestMonth_NavigationFromMonthEnd(t *testing.T) {
	view := &service.CalendarView{WindowStart: at(1, 1, 0), WindowEnd: at(2, 4, 23)}

	screen := Month(view, at(3, 31, 0), at(3, 31, 9))

	// 31 марта минус месяц не должен превращаться во 2 марта
	assert.Equal(t, []string{"mo:20240201", "mo:20240401", "wk:20240331"}, callbacks(screen.Keyboard))
	assert.Contains(t, screen.Text, "Lịch tháng 3/2024")
}

func TestCatalog_SubjectFilterAndPaging(t *testing.T) {
	view := &service.CatalogView{Subjects: []string{"Toán", "Lý"}, Enrolled: 1, Subject: "Toán", Query: "<10>"}
	for i := 0; i < 7; i++ {
		view.Classes = append(view.Classes, catalogClass(fmt.Sprintf("m%d", i), fmt.Sprintf("Toán %d", i), "Toán"))
	}

	screen := Catalog(view, CatalogState{Subject: 0, Day: All, Page: 1})

	data := callbacks(screen.Keyboard)
	assert.Contains(t, data, "en:m5")
	assert.Contains(t, data, "en:m6")
	assert.NotContains(t, data, "en:m0")
	assert.Contains(t, data, "cat:0:-1:0") // назад на первую страницу
	assert.NotContains(t, data, "cat:0:-1:2")
	assert.Contains(t, screen.Text, "6. <b>Toán 5</b>")
	assert.Contains(t, screen.Text, "Môn: <b>Toán</b>")
	assert.Contains(t, screen.Text, "Tìm: <b>&lt;10&gt;</b>")
	assert.Contains(t, screen.Text, "Bạn đã đăng ký 1 lớp")

	// выбранный предмет отмечен, кнопка "все предметы" сбрасывает фильтр
	var selected []string
	for _, row := range screen.Keyboard.InlineKeyboard {
		for _, b := range row {
			if strings.HasPrefix(b.Text, "✅") {
				selected = append(selected, b.CallbackData)
			}
		}
	}
	assert.Equal(t, []string{"cat:0:-1:0", "cat:0:-1:0"}, selected)
	assert.Contains(t, data, "cat:-1:-1:0")
}

func TestCatalog_PageOutOfRange(t *testing.T) {
	view := &service.CatalogView{Classes: []service.CatalogClass{catalogClass("a", "A", "Toán")}}

	screen := Catalog(view, CatalogState{Subject: All, Day: All, Page: 9})

	assert.Contains(t, callbacks(screen.Keyboard), "en:a")
	assert.NotContains(t, screen.Text, "Không có lớp nào")
}

func TestCatalog_EmptyAndDegraded(t *testing.T) {
	view := &service.CatalogView{ScheduleUnavailable: true}

	screen := Catalog(view, CatalogState{Subject: All, Day: int(time.Wednesday)})

	assert.Contains(t, screen.Text, "Không có lớp nào phù hợp.")
	assert.Contains(t, screen.Text, "Ngày: <b>Thứ 4</b>")
	assert.Contains(t, screen.Text, "Không tải được lịch")
	assert.Contains(t, callbacks(screen.Keyboard), "cat:-1:3:0")
}

func TestCatalogState_Filter(t *testing.T) {
	f := CatalogState{Subject: 1, Day: int(time.Sunday)}.Filter("toán")
	assert.Equal(t, "Chủ nhật", f.Day)
	assert.Equal(t, "toán", f.Query)
	assert.Equal(t, 1, f.Subject)

	def := DefaultCatalog().Filter("")
	assert.Empty(t, def.Day)
	assert.Equal(t, service.AllSubjects, def.Subject)

	assert.Equal(t, service.AllSubjects, CatalogState{Subject: -5}.Filter("").Subject)
}

func TestEnrolled_CancelButtonsOnlyWhenAllowed(t *testing.T) {
	now := at(1, 1, 12)
	first := at(1, 3, 8)
	cutoff := first.Add(-24 * time.Hour)
	late := at(1, 2, 8)
	lateCutoff := late.Add(-24 * time.Hour)

	classes := []model.EnrolledClass{
		{Entry: model.ScheduleEntry{ClassID: "c1", ClassName: "10A1"}, FirstUpcoming: &first, Cutoff: &cutoff, CancelAllowed: true},
		{Entry: model.ScheduleEntry{ClassID: "c2", ClassName: "10A2"}, FirstUpcoming: &late, Cutoff: &lateCutoff},
	}

	screen := Enrolled(classes, 24*time.Hour, now)

	data := callbacks(screen.Keyboard)
	assert.Equal(t, []string{"cx:c1", "cat:-1:-1:0"}, data)
	assert.Contains(t, screen.Text, "ít nhất 1 ngày")
	assert.Contains(t, screen.Text, "Đã hết hạn hủy")
}

func TestCancelConfirm(t *testing.T) {
	now := at(1, 1, 12)
	first := at(1, 3, 8)
	cutoff := first.Add(-24 * time.Hour)
	ec := &model.EnrolledClass{
		Entry:         model.ScheduleEntry{ClassID: "c1", ClassName: "10A1", SubjectName: "Toán"},
		FirstUpcoming: &first,
		Cutoff:        &cutoff,
		CancelAllowed: true,
	}

	screen := CancelConfirm(ec, now)
	assert.Equal(t, []string{"cxc:c1", "my"}, callbacks(screen.Keyboard))

	ec.CancelAllowed = false
	screen = CancelConfirm(ec, now)
	assert.Equal(t, []string{"my"}, callbacks(screen.Keyboard))
}

func TestFit(t *testing.T) {
	short := "a\nb"
	assert.Equal(t, short, fit(short))

	long := strings.Repeat("0123456789\n", 500)
	got := fit(long)
	require.LessOrEqual(t, len(got), MaxMessageLength)
	assert.True(t, strings.HasSuffix(got, "0123456789\n…"))
}

func TestCallbackDataWithinLimit(t *testing.T) {
	id := "65a1b2c3d4e5f60718293a4b"
	for _, action := range []callbackdata.Action{callbackdata.Enroll, callbackdata.EnrollConfirm, callbackdata.Cancel, callbackdata.CancelConfirm} {
		_, err := callbackdata.ForClass(action, id)
		assert.NoError(t, err)
	}
}

func TestClassButtons_SkipOversizedID(t *testing.T) {
	long := strings.Repeat("f", callbackdata.MaxLength)
	view := &service.CatalogView{Classes: []service.CatalogClass{
		catalogClass("ok", "A", "Toán"),
		catalogClass(long, "B", "Toán"),
	}}

	data := callbacks(Catalog(view, DefaultCatalog()).Keyboard)
	assert.Contains(t, data, "en:ok")
	for _, d := range data {
		assert.LessOrEqual(t, len(d), callbackdata.MaxLength)
	}

	confirm := EnrollConfirm(&model.ClassCatalogItem{ID: long, Name: "B"})
	assert.Equal(t, []string{"cat:-1:-1:0"}, callbacks(confirm.Keyboard))
	assert.Contains(t, confirm.Text, "Không thể đăng ký lớp này qua bot.")
}
