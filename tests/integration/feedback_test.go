//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"moodboard/internal/app/feedback/entity"
	"moodboard/internal/app/feedback/handler"
	"moodboard/internal/app/feedback/infrastructure/storage"
	"moodboard/internal/app/feedback/repository"
	"moodboard/internal/app/feedback/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type FeedbackIntegrationTestSuite struct {
	suite.Suite
	router    *gin.Engine
	dataFile  string
	uploadDir string
}

func TestFeedbackIntegrationSuite(t *testing.T) {
	suite.Run(t, new(FeedbackIntegrationTestSuite))
}

func (s *FeedbackIntegrationTestSuite) SetupTest() {
	base := s.T().TempDir()
	s.dataFile = filepath.Join(base, "data", "feedback.json")
	s.uploadDir = filepath.Join(base, "uploads")

	feedbackRepo := repository.NewFeedbackRepository(s.dataFile, 0)
	fileStorage := storage.NewLocalStorage(s.uploadDir, "/uploads", 5*1024*1024,
		[]string{"image/jpeg", "image/png", "image/webp"})
	feedbackService := service.NewFeedbackService(feedbackRepo, fileStorage)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	gin.SetMode(gin.TestMode)
	s.router = handler.SetupRoutes(feedbackHandler, s.uploadDir, "/uploads")
}

func (s *FeedbackIntegrationTestSuite) postFeedback(title, message, rating string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	s.Require().NoError(writer.WriteField("title", title))
	s.Require().NoError(writer.WriteField("message", message))
	s.Require().NoError(writer.WriteField("rating", rating))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/feedback", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *FeedbackIntegrationTestSuite) TestCreateGetSearchFlow() {
	w := s.postFeedback("Sunset", "Warm colors", "5")
	s.Require().Equal(http.StatusCreated, w.Code)

	var created entity.Feedback
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.NotEmpty(created.ID)
	s.Equal("Sunset", created.Title)
	s.Equal("Warm colors", created.Message)
	s.Equal(5, created.Rating)
	s.Contains(created.ImageURL, "/uploads/")
	s.WithinDuration(time.Now().UTC(), created.CreatedAt, time.Minute)

	// Запись сразу доступна по ID
	req, _ := http.NewRequest(http.MethodGet, "/feedback/"+created.ID, nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var fetched entity.Feedback
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	s.Equal(created, fetched)

	// И находится поиском без учёта регистра
	req, _ = http.NewRequest(http.MethodGet, "/feedback?search=sunset", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var list entity.FeedbackListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Equal(1, list.Total)
	s.Require().Len(list.Items, 1)
	s.Equal(created.ID, list.Items[0].ID)

	// Изображение отдаётся как статика по публичному пути
	req, _ = http.NewRequest(http.MethodGet, created.ImageURL, nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal([]byte{0xff, 0xd8, 0xff, 0xe0}, w.Body.Bytes())
}

func (s *FeedbackIntegrationTestSuite) TestNewestFirstOrdering() {
	for i := 1; i <= 3; i++ {
		w := s.postFeedback(fmt.Sprintf("Entry %d", i), "message", "3")
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	req, _ := http.NewRequest(http.MethodGet, "/feedback", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var list entity.FeedbackListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list.Items, 3)
	s.Equal("Entry 3", list.Items[0].Title)
	s.Equal("Entry 2", list.Items[1].Title)
	s.Equal("Entry 1", list.Items[2].Title)
}

func (s *FeedbackIntegrationTestSuite) TestPaginationEnvelope() {
	for i := 1; i <= 5; i++ {
		w := s.postFeedback(fmt.Sprintf("Entry %d", i), "message", "4")
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	req, _ := http.NewRequest(http.MethodGet, "/feedback?page=2&limit=2", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var list entity.FeedbackListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Equal(5, list.Total)
	s.Equal(2, list.Page)
	s.Equal(3, list.TotalPages)
	s.Len(list.Items, 2)
}

func (s *FeedbackIntegrationTestSuite) TestExtremePaginationValues() {
	w := s.postFeedback("Sunset", "Warm colors", "5")
	s.Require().Equal(http.StatusCreated, w.Code)

	// Список всегда отвечает 200 с конвертом, даже на граничных page/limit
	for _, query := range []string{
		"page=9223372036854775807",
		"limit=9223372036854775807&page=2",
		"page=9223372036854775807&limit=9223372036854775807",
	} {
		req, _ := http.NewRequest(http.MethodGet, "/feedback?"+query, nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Require().Equal(http.StatusOK, w.Code, query)

		var list entity.FeedbackListResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
		s.Empty(list.Items, query)
		s.NotNil(list.Items, query)
		s.Equal(1, list.Total, query)
	}
}

func (s *FeedbackIntegrationTestSuite) TestValidationFailuresHaveNoSideEffects() {
	w := s.postFeedback("", "message", "3")
	s.Require().Equal(http.StatusBadRequest, w.Code)

	req, _ := http.NewRequest(http.MethodGet, "/feedback", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var list entity.FeedbackListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Equal(0, list.Total)
}

func (s *FeedbackIntegrationTestSuite) TestConcurrentCreatesAllRetained() {
	const writers = 8

	var wg sync.WaitGroup
	codes := make([]int, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			w := s.postFeedback(fmt.Sprintf("Concurrent %d", n), "message", "5")
			codes[n] = w.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		s.Equal(http.StatusCreated, code)
	}

	req, _ := http.NewRequest(http.MethodGet, "/feedback?limit=50", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var list entity.FeedbackListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Equal(writers, list.Total)
}
