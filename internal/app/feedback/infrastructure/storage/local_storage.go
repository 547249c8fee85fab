package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"moodboard/internal/app/feedback/entity"
	"moodboard/internal/app/feedback/infrastructure"
	"moodboard/pkg/logger"
	"moodboard/pkg/metrics"

	"github.com/google/uuid"
)

// Расширение по умолчанию, если у исходного файла его не было
const defaultExtension = ".jpg"

// LocalStorage сохраняет изображения в каталог на локальном диске
// и отдаёт их под публичным префиксом baseURL
type LocalStorage struct {
	dir          string
	baseURL      string
	maxSize      int64
	allowedTypes map[string]struct{}
}

func NewLocalStorage(dir, baseURL string, maxSize int64, allowedTypes []string) *LocalStorage {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}

	return &LocalStorage{
		dir:          dir,
		baseURL:      baseURL,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

// validate проверяет файл до любой записи на диск
func (s *LocalStorage) validate(upload *entity.ImageUpload) *infrastructure.ValidationError {
	if upload == nil || upload.Content == nil {
		metrics.RecordUploadRejection("missing")
		return &infrastructure.ValidationError{Reason: "No file provided"}
	}

	if upload.Size > s.maxSize {
		metrics.RecordUploadRejection("too_large")
		return &infrastructure.ValidationError{
			Reason: fmt.Sprintf("File size exceeds %dMB limit", s.maxSize/(1024*1024)),
		}
	}

	if _, ok := s.allowedTypes[upload.ContentType]; !ok {
		metrics.RecordUploadRejection("bad_type")
		return &infrastructure.ValidationError{Reason: "Invalid file type. Only JPG, PNG, and WebP are allowed"}
	}

	return nil
}

// Save сохраняет файл под уникальным именем и возвращает публичный путь.
// Ошибки записи не глотаются: молчаливо потерянный файл сломал бы связь
// между записью отзыва и изображением.
func (s *LocalStorage) Save(ctx context.Context, upload *entity.ImageUpload) (string, error) {
	if vErr := s.validate(upload); vErr != nil {
		return "", vErr
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(upload.Filename)
	if ext == "" {
		ext = defaultExtension
	}
	fileName := uuid.NewString() + ext
	filePath := filepath.Join(s.dir, fileName)

	// O_EXCL: сгенерированное имя обязано быть свободным, перезапись запрещена
	dst, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	written, err := io.Copy(dst, upload.Content)
	if err != nil {
		dst.Close()
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	metrics.RecordUpload(written)
	logger.Debug().
		Str("file", fileName).
		Int64("size", written).
		Msg("Stored uploaded image")

	return path.Join(s.baseURL, fileName), nil
}

// Remove удаляет сохранённый файл по публичному пути (компенсация при
// неудачной записи отзыва). Отсутствие файла ошибкой не считается.
func (s *LocalStorage) Remove(ctx context.Context, publicPath string) error {
	fileName := path.Base(publicPath)
	if fileName == "." || fileName == "/" || fileName == ".." {
		return fmt.Errorf("invalid upload path: %q", publicPath)
	}

	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}

	return nil
}
