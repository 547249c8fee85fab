package infrastructure

import (
	"context"

	"moodboard/internal/app/feedback/entity"
)

// FileStorage интерфейс для хранения загруженных изображений.
// Используется для dependency injection и упрощения тестирования.
type FileStorage interface {
	// Save валидирует и сохраняет файл, возвращает публичный путь
	Save(ctx context.Context, upload *entity.ImageUpload) (string, error)
	// Remove удаляет ранее сохранённый файл по его публичному пути
	Remove(ctx context.Context, publicPath string) error
}

// ValidationError - загрузка отклонена до какого-либо обращения к диску
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
