package handlers

import (
	"github.com/Freeeeeet/classroom_bot/internal/controller/state"
	"github.com/Freeeeeet/classroom_bot/internal/service"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	sessions     *service.SessionService
	schedules    *service.ScheduleService
	enrollments  *service.EnrollmentService
	stateManager *state.Manager
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	sessions *service.SessionService,
	schedules *service.ScheduleService,
	enrollments *service.EnrollmentService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessions:     sessions,
		schedules:    schedules,
		enrollments:  enrollments,
		stateManager: stateManager,
		validate:     validator.New(),
		logger:       logger,
	}
}
