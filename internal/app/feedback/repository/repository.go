package repository

import (
	"context"
	"errors"

	"moodboard/internal/app/feedback/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrFeedbackNotFound = errors.New("feedback item not found")
)

// FeedbackRepository определяет методы для работы с коллекцией отзывов
type FeedbackRepository interface {
	Load(ctx context.Context) ([]entity.Feedback, error)
	Save(ctx context.Context, items []entity.Feedback) error
	Append(ctx context.Context, item *entity.Feedback) error
	GetByID(ctx context.Context, id string) (*entity.Feedback, error)
	Search(ctx context.Context, query string, page, limit int) (*entity.FeedbackListResponse, error)
}
