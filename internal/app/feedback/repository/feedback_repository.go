package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"moodboard/internal/app/feedback/entity"
	"moodboard/pkg/logger"
	"moodboard/pkg/metrics"
)

const DefaultPageSize = 20

// snapshotCache хранит последний успешно прочитанный снапшот коллекции.
// Снапшот заменяется целиком, читатели никогда не видят частичное обновление.
type snapshotCache struct {
	mu       sync.RWMutex
	items    []entity.Feedback
	loadedAt time.Time
	ttl      time.Duration
}

func (c *snapshotCache) get() ([]entity.Feedback, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.loadedAt.IsZero() || time.Since(c.loadedAt) >= c.ttl {
		return nil, false
	}
	return c.items, true
}

func (c *snapshotCache) replace(items []entity.Feedback) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = items
	c.loadedAt = time.Now()
}

type feedbackRepository struct {
	dataFile string
	cache    snapshotCache

	// Сериализует циклы load-modify-save: без него два конкурентных Append
	// читают один снапшот и второй Save затирает первый (lost update)
	writeMu sync.Mutex
}

// NewFeedbackRepository создает репозиторий поверх одного JSON-файла.
// Файл и его каталог создаются лениво при первой записи.
func NewFeedbackRepository(dataFile string, cacheTTL time.Duration) FeedbackRepository {
	return &feedbackRepository{
		dataFile: dataFile,
		cache:    snapshotCache{ttl: cacheTTL},
	}
}

// Load возвращает всю коллекцию, новые записи первыми.
// Отсутствующий файл - пустая коллекция. Повреждённый файл - деградация:
// логируем и возвращаем пустую коллекцию, запрос не падает.
func (r *feedbackRepository) Load(ctx context.Context) ([]entity.Feedback, error) {
	if items, ok := r.cache.get(); ok {
		metrics.RecordCacheHit()
		return items, nil
	}
	metrics.RecordCacheMiss()

	return r.loadFromDisk()
}

func (r *feedbackRepository) loadFromDisk() ([]entity.Feedback, error) {
	timer := metrics.NewStoreTimer(metrics.StoreOpLoad)
	defer timer.ObserveDuration()

	if err := os.MkdirAll(filepath.Dir(r.dataFile), 0o755); err != nil {
		logger.Error().Err(err).Str("data_file", r.dataFile).Msg("Failed to create data directory")
		metrics.RecordReadFault()
		return []entity.Feedback{}, nil
	}

	data, err := os.ReadFile(r.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			items := []entity.Feedback{}
			r.cache.replace(items)
			return items, nil
		}
		logger.Error().Err(err).Str("data_file", r.dataFile).Msg("Failed to read data file")
		metrics.RecordReadFault()
		return []entity.Feedback{}, nil
	}

	var items []entity.Feedback
	if err := json.Unmarshal(data, &items); err != nil {
		// Повреждённые данные не кешируем, следующий запрос перечитает файл
		logger.Error().Err(err).Str("data_file", r.dataFile).Msg("Data file is malformed, serving empty collection")
		metrics.RecordReadFault()
		return []entity.Feedback{}, nil
	}
	if items == nil {
		items = []entity.Feedback{}
	}

	r.cache.replace(items)
	return items, nil
}

// Save перезаписывает файл данных целиком и обновляет кеш.
// Запись идёт во временный файл с последующим rename, чтобы читатель
// не увидел наполовину записанный JSON.
func (r *feedbackRepository) Save(ctx context.Context, items []entity.Feedback) error {
	timer := metrics.NewStoreTimer(metrics.StoreOpSave)
	defer timer.ObserveDuration()

	dir := filepath.Dir(r.dataFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Отступы как у исходного файла, чтобы его можно было править руками
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feedback data: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".feedback-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp data file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close data file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.dataFile); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	r.cache.replace(items)
	return nil
}

// Append вставляет запись в начало коллекции (новые первыми) и сохраняет файл.
// Весь цикл выполняется под мьютексом - конкурентные Append не теряют записей.
func (r *feedbackRepository) Append(ctx context.Context, item *entity.Feedback) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	items, err := r.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load feedback data: %w", err)
	}

	updated := make([]entity.Feedback, 0, len(items)+1)
	updated = append(updated, *item)
	updated = append(updated, items...)

	if err := r.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to append feedback item: %w", err)
	}

	return nil
}

// GetByID ищет запись линейным проходом. Коллекция заведомо небольшая,
// индекс не поддерживается.
func (r *feedbackRepository) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	items, err := r.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback data: %w", err)
	}

	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, nil
		}
	}

	return nil, ErrFeedbackNotFound
}

// Search фильтрует коллекцию по подстроке в title или message без учёта
// регистра и возвращает одну страницу. Порядок коллекции сохраняется.
func (r *feedbackRepository) Search(ctx context.Context, query string, page, limit int) (*entity.FeedbackListResponse, error) {
	items, err := r.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback data: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	filtered := items
	if query != "" {
		term := strings.ToLower(query)
		filtered = make([]entity.Feedback, 0)
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), term) ||
				strings.Contains(strings.ToLower(item.Message), term) {
				filtered = append(filtered, item)
			}
		}
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	// Окно страницы может переполниться на огромных page/limit,
	// переполненные границы схлопываются в пустую страницу
	start := (page - 1) * limit
	end := start + limit
	if start < 0 || start > total {
		start = total
	}
	if end < start || end > total {
		end = total
	}

	pageItems := make([]entity.Feedback, 0, end-start)
	pageItems = append(pageItems, filtered[start:end]...)

	return &entity.FeedbackListResponse{
		Items:      pageItems,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}
