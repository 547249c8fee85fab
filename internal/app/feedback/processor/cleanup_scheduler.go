package processor

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"time"

	"moodboard/internal/app/feedback/repository"
	"moodboard/pkg/logger"
	"moodboard/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// CleanupScheduler периодически удаляет осиротевшие загрузки: файлы в
// каталоге изображений, на которые не ссылается ни одна запись. Такие файлы
// остаются после сбоя между сохранением изображения и записью отзыва.
type CleanupScheduler struct {
	cron         *cron.Cron
	feedbackRepo repository.FeedbackRepository
	uploadDir    string
	minAge       time.Duration
}

func NewCleanupScheduler(feedbackRepo repository.FeedbackRepository, uploadDir string, minAge time.Duration) *CleanupScheduler {
	return &CleanupScheduler{
		cron:         cron.New(),
		feedbackRepo: feedbackRepo,
		uploadDir:    uploadDir,
		minAge:       minAge,
	}
}

func (s *CleanupScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cleanup scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			logger.Error().Err(err).Msg("Cleanup run failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	// Первый проход сразу при старте
	if _, err := s.Sweep(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial cleanup run failed")
	}

	return nil
}

func (s *CleanupScheduler) Stop() {
	logger.Info().Msg("Stopping cleanup scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cleanup scheduler stopped")
}

// Sweep удаляет файлы старше minAge, не упомянутые ни в одном отзыве.
// Возраст защищает загрузки, чьи записи прямо сейчас в процессе создания.
func (s *CleanupScheduler) Sweep(ctx context.Context) (int, error) {
	items, err := s.feedbackRepo.Load(ctx)
	if err != nil {
		metrics.CleanupRuns.WithLabelValues("failed").Inc()
		return 0, err
	}

	referenced := make(map[string]struct{}, len(items))
	for _, item := range items {
		referenced[path.Base(item.ImageURL)] = struct{}{}
	}

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			metrics.CleanupRuns.WithLabelValues("success").Inc()
			return 0, nil
		}
		metrics.CleanupRuns.WithLabelValues("failed").Inc()
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}

		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < s.minAge {
			continue
		}

		filePath := filepath.Join(s.uploadDir, entry.Name())
		if err := os.Remove(filePath); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to remove orphaned file")
			continue
		}

		metrics.CleanupFilesRemoved.Inc()
		removed++
	}

	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Removed orphaned upload files")
	}

	metrics.CleanupRuns.WithLabelValues("success").Inc()
	return removed, nil
}
