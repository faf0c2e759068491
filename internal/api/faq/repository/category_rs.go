package faqRepository

import (
	"context"
	"database/sql"
	"errors"

	"PawPalGolang/internal/api/faq"
	"PawPalGolang/internal/entity"
	contextPkg "PawPalGolang/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CategoryDB struct {
	ID       sql.NullString `db:"id"`
	Title    sql.NullString `db:"title"`
	Position sql.NullInt64  `db:"position"`
}

type QuestionDB struct {
	ID          sql.NullString `db:"id"`
	CategoryID  sql.NullString `db:"category_id"`
	Question    sql.NullString `db:"question"`
	Description sql.NullString `db:"description"`
	Position    sql.NullInt64  `db:"position"`
}

func (r *categoriesRepository) GetAllCategories(ctx context.Context) ([]entity.FAQCategory, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var categoryRows []CategoryDB
	if err := r.q.SelectContext(ctx, &categoryRows, queryGetAllCategories); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching FAQ categories")
		return nil, err
	}

	var questionRows []QuestionDB
	if err := r.q.SelectContext(ctx, &questionRows, queryGetAllQuestions); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching FAQ questions")
		return nil, err
	}

	questionsByCategory := make(map[string][]entity.FAQQuestion)
	for _, row := range questionRows {
		q := row.toEntity()
		questionsByCategory[q.CategoryID] = append(questionsByCategory[q.CategoryID], q)
	}

	categories := make([]entity.FAQCategory, 0, len(categoryRows))
	for _, row := range categoryRows {
		cat := row.toEntity()
		cat.Questions = questionsByCategory[cat.ID]
		categories = append(categories, cat)
	}

	return categories, nil
}

func (r *categoriesRepository) GetCategoryByID(ctx context.Context, id string) (entity.FAQCategory, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetCategoryByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryByID named query preparation err")
		return entity.FAQCategory{}, err
	}
	query = r.q.Rebind(query)

	var categoryRow CategoryDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&categoryRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": id,
			}).Warn("GetCategoryByID no rows found")
			return entity.FAQCategory{}, faq.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching FAQ category")
		return entity.FAQCategory{}, err
	}

	query, args, err = sqlx.Named(queryGetQuestionsByCategory, map[string]interface{}{
		"category_id": id,
	})
	if err != nil {
		return entity.FAQCategory{}, err
	}
	query = r.q.Rebind(query)

	var questionRows []QuestionDB
	if err := r.q.SelectContext(ctx, &questionRows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching FAQ questions for category")
		return entity.FAQCategory{}, err
	}

	category := categoryRow.toEntity()
	for _, row := range questionRows {
		category.Questions = append(category.Questions, row.toEntity())
	}

	return category, nil
}

func (c CategoryDB) toEntity() entity.FAQCategory {
	return entity.FAQCategory{
		ID:       c.ID.String,
		Title:    c.Title.String,
		Position: int(c.Position.Int64),
	}
}

func (q QuestionDB) toEntity() entity.FAQQuestion {
	return entity.FAQQuestion{
		ID:          q.ID.String,
		CategoryID:  q.CategoryID.String,
		Question:    q.Question.String,
		Description: q.Description.String,
		Position:    int(q.Position.Int64),
	}
}
