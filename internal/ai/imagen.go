package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"github.com/mixaura/agency-backend/internal/models"
)

// ImagenClient генерирует изображения через Google GenAI (Imagen).
type ImagenClient struct {
	client *genai.Client
	model  string
}

// NewImagenClient создаёт клиент генерации изображений.
func NewImagenClient(ctx context.Context, apiKey, model string) (*ImagenClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ai: GEMINI_API_KEY не задан")
	}

	if model == "" {
		model = "imagen-4.0-fast-generate-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: не удалось создать GenAI клиент: %w", err)
	}

	return &ImagenClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateImage генерирует одно изображение по текстовому промпту.
// Возвращает nil без ошибки, если сервис ответил успешно, но изображения
// в ответе нет — вызывающая сторона оставляет заглушку.
func (c *ImagenClient) GenerateImage(ctx context.Context, prompt string) (*models.GeneratedMedia, error) {
	resp, err := c.client.Models.GenerateImages(ctx, c.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: генерация изображения: %w", err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, nil
	}

	image := resp.GeneratedImages[0].Image
	if image == nil || len(image.ImageBytes) == 0 {
		return nil, nil
	}

	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}

	return &models.GeneratedMedia{
		URL:      fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image.ImageBytes)),
		MimeType: mimeType,
	}, nil
}
