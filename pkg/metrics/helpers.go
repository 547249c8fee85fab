package metrics

import (
	"time"
)

type StoreOperation string

const (
	StoreOpLoad StoreOperation = "load"
	StoreOpSave StoreOperation = "save"
)

// StoreTimer измеряет длительность операций с файлом данных
type StoreTimer struct {
	operation StoreOperation
	start     time.Time
}

func NewStoreTimer(op StoreOperation) *StoreTimer {
	return &StoreTimer{
		operation: op,
		start:     time.Now(),
	}
}

func (st *StoreTimer) ObserveDuration() {
	duration := time.Since(st.start).Seconds()
	switch st.operation {
	case StoreOpLoad:
		StoreLoadDuration.Observe(duration)
	case StoreOpSave:
		StoreSaveDuration.Observe(duration)
	}
}

func RecordCacheHit() {
	StoreCacheHits.Inc()
}

func RecordCacheMiss() {
	StoreCacheMisses.Inc()
}

func RecordReadFault() {
	StoreReadFaults.Inc()
}

func RecordUpload(sizeBytes int64) {
	UploadsTotal.Inc()
	UploadBytes.Observe(float64(sizeBytes))
}

func RecordUploadRejection(reason string) {
	UploadRejections.WithLabelValues(reason).Inc()
}

func RecordFeedbackCreated(rating int) {
	FeedbackCreated.Inc()
	FeedbackRating.Observe(float64(rating))
}
