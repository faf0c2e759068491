package assistantHandler

import (
	assistantService "PawPalGolang/internal/api/assistant/service"
	"PawPalGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	sessions := srv.Group("/assistant/sessions")

	sessions.Post("/", h.middleware.NewRateLimiter, h.CreateSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.CloseSession)

	sessions.Post("/:id/messages", h.middleware.NewRateLimiter, h.SendMessage)
	sessions.Post("/:id/questions", h.middleware.NewRateLimiter, h.SelectQuestion)
	sessions.Post("/:id/back", h.NavigateBack)
	sessions.Post("/:id/reset", h.ResetSession)
}
