package controller

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/classroom_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/classroom_bot/internal/controller/formatting"
	"github.com/Freeeeeet/classroom_bot/internal/controller/handlers"
	"github.com/Freeeeeet/classroom_bot/internal/controller/state"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	sessions        *service.SessionService
	schedules       *service.ScheduleService
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	sessions *service.SessionService,
	schedules *service.ScheduleService,
	enrollments *service.EnrollmentService,
	logger *zap.Logger,
) *BotController {
	// Общий менеджер состояний: диалог входа и поиск в каталоге
	stateManager := state.NewManager(state.DefaultTTL)

	cmdHandlers := handlers.NewHandlers(
		sessions,
		schedules,
		enrollments,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		sessions,
		schedules,
		enrollments,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		sessions:        sessions,
		schedules:       schedules,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Общие команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Календарь, команды принимают дату аргументом
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/month", bot.MatchTypePrefix, c.handlers.HandleMonth)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/teaching", bot.MatchTypePrefix, c.handlers.HandleTeaching)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/ics", bot.MatchTypeExact, c.handlers.HandleICS)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reminders", bot.MatchTypePrefix, c.handlers.HandleReminders)

	// Запись на классы (студенты)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/classes", bot.MatchTypePrefix, c.handlers.HandleClasses)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myclasses", bot.MatchTypeExact, c.handlers.HandleMyClasses)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Bắt đầu"},
		{Command: "login", Description: "🔐 Đăng nhập"},
		{Command: "week", Description: "📅 Lịch tuần này"},
		{Command: "today", Description: "🕘 Lịch hôm nay"},
		{Command: "month", Description: "🗓 Lịch tháng này"},
		{Command: "classes", Description: "📚 Đăng ký lớp học (học viên)"},
		{Command: "myclasses", Description: "🎓 Lớp đã đăng ký (học viên)"},
		{Command: "teaching", Description: "👨‍🏫 Lịch giảng dạy (giáo viên)"},
		{Command: "ics", Description: "📥 Xuất lịch .ics"},
		{Command: "reminders", Description: "🔔 Nhắc lịch hằng ngày"},
		{Command: "logout", Description: "👋 Đăng xuất"},
		{Command: "help", Description: "❓ Trợ giúp"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

// SendReminder отправляет расписание на сегодня
func (c *BotController) SendReminder(ctx context.Context, session *model.Session, view *service.CalendarView) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    session.ChatID,
		Text:      formatting.FormatReminder(session, view, c.schedules.Now()),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send reminder to %d: %w", session.TelegramID, err)
	}
	return nil
}

// SessionExpired удаляет сессию с протухшим токеном и просит войти заново
func (c *BotController) SessionExpired(ctx context.Context, session *model.Session) {
	if _, err := c.sessions.Logout(ctx, session.TelegramID); err != nil {
		c.logger.Error("Failed to drop expired session",
			zap.Int64("telegram_id", session.TelegramID),
			zap.Error(err),
		)
		return
	}

	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: session.ChatID,
		Text:   "🔐 Phiên đăng nhập đã hết hạn nên nhắc lịch đã tạm dừng.\n\nĐăng nhập lại: /login, rồi bật nhắc lịch: /reminders on",
	})
	if err != nil {
		c.logger.Warn("Failed to notify about expired session",
			zap.Int64("telegram_id", session.TelegramID),
			zap.Error(err),
		)
	}
}
