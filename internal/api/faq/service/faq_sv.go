package faqService

import (
	"PawPalGolang/internal/api/faq"
	"PawPalGolang/internal/entity"
	contextPkg "PawPalGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *faqService) GetAllCategories(ctx context.Context) ([]faq.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.faqRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	categories, err := repo.Categories.GetAllCategories(ctx)
	if err != nil {
		return nil, faq.ErrFetchCategories
	}

	responses := make([]faq.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category))
	}

	return responses, nil
}

func (s *faqService) GetCategoryByID(ctx context.Context, id string) (*faq.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.faqRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	category, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toCategoryResponse(category)
	return &response, nil
}

func toCategoryResponse(category entity.FAQCategory) faq.CategoryResponse {
	questions := make([]faq.QuestionResponse, 0, len(category.Questions))
	for _, question := range category.Questions {
		questions = append(questions, faq.QuestionResponse{
			ID:          question.ID,
			Question:    question.Question,
			Description: question.Description,
		})
	}

	return faq.CategoryResponse{
		ID:        category.ID,
		Title:     category.Title,
		Questions: questions,
	}
}
