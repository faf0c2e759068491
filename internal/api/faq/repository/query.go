package faqRepository

const (
	queryGetAllCategories = `
		SELECT
			id,
			title,
			position
		FROM faq_categories
		ORDER BY position ASC
	`

	queryGetCategoryByID = `
		SELECT
			id,
			title,
			position
		FROM faq_categories
		WHERE id = :id
	`

	queryGetQuestionsByCategory = `
		SELECT
			id,
			category_id,
			question,
			description,
			position
		FROM faq_questions
		WHERE category_id = :category_id
		ORDER BY position ASC
	`

	queryGetAllQuestions = `
		SELECT
			id,
			category_id,
			question,
			description,
			position
		FROM faq_questions
		ORDER BY category_id ASC, position ASC
	`
)
