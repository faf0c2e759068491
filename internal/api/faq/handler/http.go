package faqHandler

import (
	faqService "PawPalGolang/internal/api/faq/service"
	"PawPalGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type FAQHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	faqService faqService.IFAQService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	fs faqService.IFAQService,
) *FAQHandler {
	return &FAQHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		faqService: fs,
	}
}

func (h *FAQHandler) Start(srv fiber.Router) {
	faqs := srv.Group("/faq")

	faqs.Get("/categories", h.GetAllCategories)
	faqs.Get("/categories/:id", h.GetCategoryByID)
}
