package entity

// CreateFeedbackRequest - текстовые поля формы создания отзыва.
// Порядок полей задаёт порядок проверки: title -> message -> rating.
type CreateFeedbackRequest struct {
	Title   string `form:"title" validate:"required,max=80"`
	Message string `form:"message" validate:"required,max=600"`
	Rating  int    `form:"rating" validate:"required,min=1,max=5"`
}

// FeedbackListResponse - страница результатов поиска
type FeedbackListResponse struct {
	Items      []Feedback `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Message string `json:"message"`
}
