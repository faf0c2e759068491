package entity

type FAQCategory struct {
	ID        string
	Title     string
	Position  int
	Questions []FAQQuestion
}

type FAQQuestion struct {
	ID          string
	CategoryID  string
	Question    string
	Description string
	Position    int
}
