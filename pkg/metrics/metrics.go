package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="moodboard"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Store Метрики (JSON-файл с отзывами)
// =============================================================================

// StoreLoadDuration - время чтения и разбора файла данных
var StoreLoadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "store_load_duration_seconds",
		Help:    "Duration of data file load operations in seconds",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	},
)

// StoreSaveDuration - время сериализации и записи файла данных
var StoreSaveDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "store_save_duration_seconds",
		Help:    "Duration of data file save operations in seconds",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	},
)

// StoreCacheHits - чтения, отданные из снапшот-кеша без обращения к диску
var StoreCacheHits = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "store_cache_hits_total",
		Help: "Total number of reads served from the in-memory snapshot cache",
	},
)

// StoreCacheMisses - чтения, потребовавшие перечитать файл
var StoreCacheMisses = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "store_cache_misses_total",
		Help: "Total number of reads that had to reload the data file",
	},
)

// StoreReadFaults - повреждённый файл данных (деградация до пустой коллекции)
var StoreReadFaults = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "store_read_faults_total",
		Help: "Total number of data file reads that failed and degraded to an empty collection",
	},
)

// =============================================================================
// Upload Метрики
// =============================================================================

// UploadsTotal - успешно сохранённые изображения
var UploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Total number of images stored",
	},
)

// UploadRejections - отклонённые загрузки по причинам
var UploadRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upload_rejections_total",
		Help: "Total number of rejected uploads",
	},
	[]string{"reason"}, // missing, too_large, bad_type
)

// UploadBytes - распределение размеров загружаемых файлов
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "upload_bytes",
		Help:    "Distribution of uploaded file sizes in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
)

// =============================================================================
// Business Метрики
// =============================================================================

// FeedbackCreated - созданные отзывы
var FeedbackCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "feedback_created_total",
		Help: "Total number of feedback items created",
	},
)

// FeedbackRating - распределение оценок
var FeedbackRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "feedback_rating",
		Help:    "Distribution of feedback ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// =============================================================================
// Cleanup Метрики
// =============================================================================

// CleanupFilesRemoved - файлы, удалённые сборщиком осиротевших загрузок
var CleanupFilesRemoved = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "cleanup_files_removed_total",
		Help: "Total number of orphaned upload files removed by the cleanup job",
	},
)

// CleanupRuns - запуски сборщика по статусам
var CleanupRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cleanup_runs_total",
		Help: "Total number of cleanup job runs",
	},
	[]string{"status"}, // success, failed
)
