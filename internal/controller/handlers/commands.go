package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/state"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	studentHelp = "Học viên:\n" +
		"/classes [từ khóa] - Danh sách lớp đang mở, đăng ký lớp\n" +
		"/myclasses - Lớp đã đăng ký, hủy đăng ký\n"

	teacherHelp = "Giáo viên:\n" +
		"/teaching - Lịch giảng dạy tuần này\n"

	commonHelp = "/week - Lịch tuần này\n" +
		"/month - Lịch tháng này\n" +
		"/today - Lịch hôm nay\n" +
		"/ics - Xuất lịch ra file .ics\n" +
		"/reminders on|off - Nhắc lịch hằng ngày\n" +
		"/logout - Đăng xuất\n" +
		"/help - Trợ giúp"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	session, err := h.sessions.Get(ctx, update.Message.From.ID)
	if err != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
			"👋 Xin chào, %s!\n\n"+
				"Đây là bot lịch học của trung tâm. Bot giúp bạn xem lịch học, "+
				"đăng ký và hủy đăng ký lớp, nhận nhắc lịch mỗi ngày.\n\n"+
				"Để bắt đầu, hãy đăng nhập bằng tài khoản của trung tâm: /login",
			html.EscapeString(update.Message.From.FirstName),
		))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"👋 Xin chào, %s!\nBạn đang đăng nhập với vai trò <b>%s</b>.\n\n%s",
		html.EscapeString(session.Name),
		formatting.RoleName(session.Role),
		helpText(session),
	))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	// без сессии показываем только вход
	session, _ := h.sessions.Get(ctx, update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📚 Các lệnh:\n\n"+helpText(session))
}

// helpText список команд для роли пользователя
func helpText(session *model.Session) string {
	if session == nil {
		return "/login - Đăng nhập\n/help - Trợ giúp"
	}

	var sb strings.Builder
	if session.IsStudent() {
		sb.WriteString(studentHelp + "\n")
	}
	if session.HasRole(model.RoleTeacher, model.RoleAdmin) {
		sb.WriteString(teacherHelp + "\n")
	}
	sb.WriteString(commonHelp)
	return sb.String()
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Không có thao tác nào để hủy.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Đã hủy thao tác.\n\nXem các lệnh: /help")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// неизвестная команда вне диалога
	if strings.HasPrefix(update.Message.Text, "/") {
		if currentState == state.StateNone {
			h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 Lệnh không hợp lệ. Xem các lệnh: /help")
		}
		return
	}

	switch currentState {
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)
	default:
		h.logger.Debug("Text message without dialog", zap.Int64("telegram_id", telegramID))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Xem các lệnh: /help")
	}
}
