package service

import (
	"context"

	"moodboard/internal/app/feedback/entity"
)

type FeedbackServiceInterface interface {
	CreateFeedback(ctx context.Context, req *entity.CreateFeedbackRequest, image *entity.ImageUpload) (*entity.Feedback, error)
	SearchFeedback(ctx context.Context, query string, page, limit int) (*entity.FeedbackListResponse, error)
	GetFeedback(ctx context.Context, id string) (*entity.Feedback, error)
}
