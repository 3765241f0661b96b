package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mixaura/agency-backend/internal/logger"
	"github.com/mixaura/agency-backend/internal/models"
)

// StructuredGenerator описывает структурированную текстовую генерацию.
type StructuredGenerator interface {
	GeneratePortfolioItems(ctx context.Context, industry, strategy string) ([]models.GeneratedPortfolioItem, error)
}

// ImageGenerator описывает генерацию изображения по промпту.
// nil медиа без ошибки означает успешный ответ без изображения.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*models.GeneratedMedia, error)
}

// ErrEmptyGeneration возвращается, когда текстовая генерация не дала ни одного элемента.
var ErrEmptyGeneration = errors.New("генерация вернула пустой результат")

// EmptyResultMessage — сообщение для клиента при пустом результате генерации.
const EmptyResultMessage = "не удалось сгенерировать портфолио: AI вернул пустой результат"

// GeneratorService оркестрирует генерацию портфолио: один структурированный
// текстовый запрос, затем по одному запросу изображения на элемент.
type GeneratorService struct {
	text  StructuredGenerator
	image ImageGenerator
}

// NewGeneratorService создаёт сервис генерации.
func NewGeneratorService(text StructuredGenerator, image ImageGenerator) *GeneratorService {
	return &GeneratorService{
		text:  text,
		image: image,
	}
}

// Generate выполняет полный цикл генерации. Текстовый запрос строго
// предшествует запросам изображений. Неудача изображения одного элемента
// не прерывает цикл: элемент сохраняет заглушку из текстовой генерации.
func (s *GeneratorService) Generate(ctx context.Context, req models.GenerationRequest) (*models.PortfolioGeneration, error) {
	if s.text == nil {
		return nil, fmt.Errorf("generator service: текстовая генерация не настроена")
	}

	items, err := s.text.GeneratePortfolioItems(ctx, req.Industry, req.MarketingStrategy)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrEmptyGeneration
	}

	// Изображения генерируются последовательно: объём всегда фиксированный
	// (3 элемента), простота здесь важнее пропускной способности.
	for i := range items {
		prompt := fmt.Sprintf("Сгенерируй изображение для элемента портфолио с названием '%s' и описанием '%s'.",
			items[i].Title, items[i].Description)

		media, imgErr := s.generateImage(ctx, prompt)
		if imgErr != nil {
			s.warnImage(items[i].Title, imgErr.Error())
			continue
		}
		if media == nil || media.URL == "" {
			s.warnImage(items[i].Title, "сервис не вернул изображение")
			continue
		}

		items[i].ImageURL = media.URL
	}

	return &models.PortfolioGeneration{PortfolioItems: items}, nil
}

// SubmitResult — нормализованный итог генерации для слоя представления.
// Ровно одно из полей не nil.
type SubmitResult struct {
	Portfolio *models.PortfolioGeneration `json:"portfolio"`
	Error     *string                     `json:"error"`
}

// Submit вызывает Generate и сводит любой исход к паре результат/ошибка,
// чтобы представлению не приходилось различать брошенную ошибку и пустой результат.
func (s *GeneratorService) Submit(ctx context.Context, req models.GenerationRequest) SubmitResult {
	generation, err := s.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, ErrEmptyGeneration) {
			return errorResult(EmptyResultMessage)
		}

		msg := err.Error()
		if msg == "" {
			msg = "неизвестная ошибка"
		}
		return errorResult(fmt.Sprintf("непредвиденная ошибка при генерации портфолио: %s. Попробуйте ещё раз.", msg))
	}

	if generation == nil || len(generation.PortfolioItems) == 0 {
		return errorResult(EmptyResultMessage)
	}

	return SubmitResult{Portfolio: generation}
}

// generateImage выполняет один запрос изображения с учётом ненастроенного сервиса.
func (s *GeneratorService) generateImage(ctx context.Context, prompt string) (*models.GeneratedMedia, error) {
	if s.image == nil {
		return nil, fmt.Errorf("генерация изображений не настроена")
	}
	return s.image.GenerateImage(ctx, prompt)
}

// warnImage пишет нефатальное предупреждение о неудачной генерации изображения.
func (s *GeneratorService) warnImage(title, reason string) {
	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"item":   title,
			"reason": reason,
		}).Warn("generator service: изображение не сгенерировано, оставлена заглушка")
	}
}

// errorResult формирует SubmitResult с заполненной ошибкой.
func errorResult(msg string) SubmitResult {
	return SubmitResult{Error: &msg}
}
