package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mixaura/agency-backend/internal/dto"
	"github.com/mixaura/agency-backend/internal/models"
	"github.com/mixaura/agency-backend/internal/service"
	"github.com/mixaura/agency-backend/internal/validation"
)

// GeneratorHandler предоставляет HTTP слой для генерации портфолио.
type GeneratorHandler struct {
	generator *service.GeneratorService
}

// NewGeneratorHandler создаёт хэндлер.
func NewGeneratorHandler(generator *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{generator: generator}
}

// Generate обрабатывает POST /api/generate.
// Невалидный ввод отклоняется с 400; сама генерация всегда отвечает 200
// с телом из двух полей, где заполнено ровно одно: portfolio либо error.
func (h *GeneratorHandler) Generate(c *gin.Context) {
	var req dto.GeneratePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidateIndustry(req.Industry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidateMarketingStrategy(req.MarketingStrategy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.generator.Submit(c.Request.Context(), models.GenerationRequest{
		Industry:          req.Industry,
		MarketingStrategy: req.MarketingStrategy,
	})

	c.JSON(http.StatusOK, result)
}
