package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mixaura/agency-backend/internal/models"
	"github.com/mixaura/agency-backend/internal/service"
)

type stubTextGenerator struct {
	items []models.GeneratedPortfolioItem
	err   error
}

func (s *stubTextGenerator) GeneratePortfolioItems(ctx context.Context, industry, strategy string) ([]models.GeneratedPortfolioItem, error) {
	return s.items, s.err
}

func newGeneratorRouter(text service.StructuredGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewGeneratorHandler(service.NewGeneratorService(text, nil))
	r.POST("/generate", handler.Generate)
	return r
}

func postGenerate(r *gin.Engine, body map[string]string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/generate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGeneratorHandler_Generate_Success(t *testing.T) {
	text := &stubTextGenerator{items: []models.GeneratedPortfolioItem{
		{Title: "A", Description: "B", ImageURL: "data:image/png;base64,x"},
	}}
	r := newGeneratorRouter(text)

	w := postGenerate(r, map[string]string{
		"industry":          "финтех",
		"marketingStrategy": "контент-маркетинг для стартапов",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Portfolio *models.PortfolioGeneration `json:"portfolio"`
		Error     *string                     `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Portfolio)
	assert.Nil(t, resp.Error)
	assert.Len(t, resp.Portfolio.PortfolioItems, 1)
}

func TestGeneratorHandler_Generate_FailureStillOK(t *testing.T) {
	text := &stubTextGenerator{err: errors.New("модель недоступна")}
	r := newGeneratorRouter(text)

	w := postGenerate(r, map[string]string{
		"industry":          "финтех",
		"marketingStrategy": "контент-маркетинг для стартапов",
	})

	// Сбой генерации не является HTTP ошибкой: форма всегда получает 200
	// с заполненным полем error.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Portfolio *models.PortfolioGeneration `json:"portfolio"`
		Error     *string                     `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Portfolio)
	assert.NotNil(t, resp.Error)
}

func TestGeneratorHandler_Generate_ShortIndustry(t *testing.T) {
	r := newGeneratorRouter(&stubTextGenerator{})

	w := postGenerate(r, map[string]string{
		"industry":          "ab",
		"marketingStrategy": "контент-маркетинг для стартапов",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratorHandler_Generate_ShortStrategy(t *testing.T) {
	r := newGeneratorRouter(&stubTextGenerator{})

	w := postGenerate(r, map[string]string{
		"industry":          "финтех",
		"marketingStrategy": "коротко",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratorHandler_Generate_MissingFields(t *testing.T) {
	r := newGeneratorRouter(&stubTextGenerator{})

	w := postGenerate(r, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
