package entity

import (
	"io"
	"time"
)

type Feedback struct {
	ID        string    `json:"id"`        // UUID, генерируется на сервере
	Title     string    `json:"title"`     // Заголовок, 1-80 символов
	Message   string    `json:"message"`   // Текст отзыва, 1-600 символов
	Rating    int       `json:"rating"`    // Оценка от 1 до 5
	ImageURL  string    `json:"imageUrl"`  // Публичный путь к сохранённому изображению
	CreatedAt time.Time `json:"createdAt"` // Момент создания, UTC
}

// ImageUpload - типизированное представление multipart-файла из формы
type ImageUpload struct {
	Filename    string
	ContentType string // Заявленный клиентом MIME-тип
	Size        int64
	Content     io.Reader
}
