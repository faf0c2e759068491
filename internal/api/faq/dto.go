package faq

type QuestionResponse struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Description string `json:"description,omitempty"`
}

type CategoryResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Questions []QuestionResponse `json:"questions"`
}
