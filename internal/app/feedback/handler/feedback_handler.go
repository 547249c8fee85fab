package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"moodboard/internal/app/feedback/entity"
	"moodboard/internal/app/feedback/infrastructure"
	"moodboard/internal/app/feedback/repository"
	"moodboard/internal/app/feedback/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FeedbackServiceInterface interface {
	CreateFeedback(ctx context.Context, req *entity.CreateFeedbackRequest, image *entity.ImageUpload) (*entity.Feedback, error)
	SearchFeedback(ctx context.Context, query string, page, limit int) (*entity.FeedbackListResponse, error)
	GetFeedback(ctx context.Context, id string) (*entity.Feedback, error)
}

type FeedbackHandler struct {
	feedbackService FeedbackServiceInterface
	validator       *validator.Validate
}

func NewFeedbackHandler(feedbackService FeedbackServiceInterface) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validator:       validator.New(),
	}
}

// ListFeedback обрабатывает GET /feedback?search=&page=&limit=
// Всегда отвечает 200 с постраничным конвертом, даже если совпадений нет.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = repository.DefaultPageSize
	}

	search := c.Query("search")

	result, err := h.feedbackService.SearchFeedback(c.Request.Context(), search, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Message: "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFeedback обрабатывает GET /feedback/:id
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "ID parameter is required"})
		return
	}

	item, err := h.feedbackService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Message: "Feedback item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Message: "Failed to fetch feedback item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateFeedback обрабатывает POST /feedback (multipart form).
// Поля проверяются в порядке title -> message -> rating -> image,
// ответ 400 содержит сообщение по первому невалидному полю.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	req := entity.CreateFeedbackRequest{
		Title:   strings.TrimSpace(c.PostForm("title")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if rating, err := strconv.Atoi(c.PostForm("rating")); err == nil {
		req.Rating = rating
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: formatValidationError(err)})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Image is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Image is required"})
		return
	}
	defer file.Close()

	upload := &entity.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}

	item, err := h.feedbackService.CreateFeedback(c.Request.Context(), &req, upload)
	if err != nil {
		var vErr *infrastructure.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: vErr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Message: "Failed to save feedback"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Сообщения повторяют публичный контракт API и не меняются вместе с тегами
var validationMessages = map[string]string{
	"Title":   "Title is required and must be 80 characters or less",
	"Message": "Message is required and must be 600 characters or less",
	"Rating":  "Rating must be between 1 and 5",
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			if msg, ok := validationMessages[fieldError.Field()]; ok {
				return msg
			}
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
