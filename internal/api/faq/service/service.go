package faqService

import (
	"context"

	"PawPalGolang/internal/api/faq"
	faqRepository "PawPalGolang/internal/api/faq/repository"

	"github.com/sirupsen/logrus"
)

type IFAQService interface {
	GetAllCategories(ctx context.Context) ([]faq.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id string) (*faq.CategoryResponse, error)
}

type faqService struct {
	log     *logrus.Logger
	faqRepo faqRepository.Repository
}

func New(log *logrus.Logger, faqRepo faqRepository.Repository) IFAQService {
	return &faqService{
		log:     log,
		faqRepo: faqRepo,
	}
}
