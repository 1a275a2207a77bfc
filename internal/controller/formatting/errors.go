package formatting

import (
	"errors"
	"html"

	"github.com/Freeeeeet/classroom_bot/internal/api"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
)

// ErrorText текст ошибки сервиса для пользователя
func ErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return "🔐 Bạn chưa đăng nhập. Dùng /login để đăng nhập."
	case errors.Is(err, service.ErrSessionExpired):
		return "🔐 Phiên đăng nhập đã hết hạn. Vui lòng /login lại."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "❌ Email hoặc mật khẩu không đúng."
	case errors.Is(err, service.ErrForbidden):
		return "⛔ Chức năng này không dành cho vai trò của bạn."
	case errors.Is(err, service.ErrNotEnrolled):
		return "❌ Bạn chưa đăng ký lớp này."
	case errors.Is(err, service.ErrCancelWindowClosed):
		return "🔒 Đã quá hạn hủy đăng ký lớp này."
	case errors.Is(err, service.ErrNotFound):
		return "❌ Không tìm thấy lớp học."
	case errors.Is(err, service.ErrBackendUnavailable):
		return "⚠️ Máy chủ trung tâm không phản hồi. Vui lòng thử lại sau."
	case api.StatusCode(err) >= 400 && api.StatusCode(err) < 500:
		// бэкенд объясняет отказ сам (класс заполнен, уже записан и т.п.)
		return "❌ " + html.EscapeString(api.Message(err, "Yêu cầu không hợp lệ."))
	default:
		return "❌ Đã xảy ra lỗi. Vui lòng thử lại sau."
	}
}

// RoleName название роли для пользователя
func RoleName(role string) string {
	switch role {
	case model.RoleStudent:
		return "Học viên"
	case model.RoleTeacher:
		return "Giáo viên"
	case model.RoleAdmin:
		return "Quản trị viên"
	default:
		return html.EscapeString(role)
	}
}
