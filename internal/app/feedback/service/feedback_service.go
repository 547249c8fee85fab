package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moodboard/internal/app/feedback/entity"
	"moodboard/internal/app/feedback/infrastructure"
	"moodboard/internal/app/feedback/repository"
	"moodboard/pkg/logger"
	"moodboard/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrFeedbackNotFound = errors.New("feedback item not found")
)

// FeedbackService обрабатывает бизнес-логику отзывов.
// Координирует хранилище изображений и JSON-репозиторий.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	fileStorage  infrastructure.FileStorage
}

// NewFeedbackService создает новый сервис отзывов с внедрением зависимостей
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	fileStorage infrastructure.FileStorage,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		fileStorage:  fileStorage,
	}
}

// CreateFeedback создает новый отзыв
// 1. Сохраняет изображение на диск
// 2. Добавляет запись в начало коллекции
// При неудачной записи коллекции изображение удаляется, чтобы не осиротеть.
func (s *FeedbackService) CreateFeedback(ctx context.Context, req *entity.CreateFeedbackRequest, image *entity.ImageUpload) (*entity.Feedback, error) {
	imageURL, err := s.fileStorage.Save(ctx, image)
	if err != nil {
		return nil, err
	}

	item := &entity.Feedback{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Message:   strings.TrimSpace(req.Message),
		Rating:    req.Rating,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.feedbackRepo.Append(ctx, item); err != nil {
		// Компенсация: запись не сохранилась, файл не должен остаться без владельца
		if rmErr := s.fileStorage.Remove(ctx, imageURL); rmErr != nil {
			logger.Error().Err(rmErr).Str("image_url", imageURL).Msg("Failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	metrics.RecordFeedbackCreated(item.Rating)
	return item, nil
}

// SearchFeedback возвращает страницу отзывов по поисковому запросу.
// Пустой запрос соответствует всем записям.
func (s *FeedbackService) SearchFeedback(ctx context.Context, query string, page, limit int) (*entity.FeedbackListResponse, error) {
	result, err := s.feedbackRepo.Search(ctx, query, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search feedback: %w", err)
	}

	return result, nil
}

// GetFeedback получает отзыв по ID
func (s *FeedbackService) GetFeedback(ctx context.Context, id string) (*entity.Feedback, error) {
	item, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return item, nil
}
