package mocks

import (
	"context"

	"moodboard/internal/app/feedback/entity"

	"github.com/stretchr/testify/mock"
)

// MockFeedbackRepository мок для FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Load(ctx context.Context) ([]entity.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Save(ctx context.Context, items []entity.Feedback) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Append(ctx context.Context, item *entity.Feedback) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFeedbackRepository) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Search(ctx context.Context, query string, page, limit int) (*entity.FeedbackListResponse, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeedbackListResponse), args.Error(1)
}

// MockFileStorage мок для infrastructure.FileStorage
type MockFileStorage struct {
	mock.Mock
	Removed []string
}

func (m *MockFileStorage) Save(ctx context.Context, upload *entity.ImageUpload) (string, error) {
	args := m.Called(ctx, upload)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Remove(ctx context.Context, publicPath string) error {
	m.Removed = append(m.Removed, publicPath)
	args := m.Called(ctx, publicPath)
	return args.Error(0)
}
