package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Upload  UploadConfig
	Cleanup CleanupConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

type StoreConfig struct {
	DataFile string        // Путь к JSON-файлу с отзывами
	CacheTTL time.Duration // Время жизни снапшот-кеша
}

type UploadConfig struct {
	Dir          string   // Каталог для загруженных изображений
	BaseURL      string   // Публичный префикс, под которым отдаются изображения
	MaxSize      int64    // Максимальный размер файла в байтах
	AllowedTypes []string // Разрешённые MIME-типы
}

type CleanupConfig struct {
	Schedule string        // Cron-выражение; пустая строка отключает сборщик
	MinAge   time.Duration // Минимальный возраст файла для удаления
}

func Load() (*Config, error) {
	// .env не обязателен, в контейнере конфигурация приходит через окружение
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Store: StoreConfig{
			DataFile: getEnv("DATA_FILE", "data/feedback.json"),
			CacheTTL: getDurationEnv("CACHE_TTL", 10*time.Second),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "public/uploads"),
			BaseURL:      getEnv("UPLOAD_BASE_URL", "/uploads"),
			MaxSize:      getInt64Env("MAX_UPLOAD_SIZE", 5*1024*1024),
			AllowedTypes: getListEnv("ALLOWED_MIME_TYPES", []string{"image/jpeg", "image/png", "image/webp"}),
		},
		Cleanup: CleanupConfig{
			Schedule: getEnv("CLEANUP_SCHEDULE", ""),
			MinAge:   getDurationEnv("CLEANUP_MIN_AGE", time.Hour),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
