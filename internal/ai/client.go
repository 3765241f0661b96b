package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mixaura/agency-backend/internal/models"
)

// Client реализует структурированную текстовую генерацию через
// OpenAI-совместимый API (Bothub).
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт экземпляр клиента.
func NewClient(baseURL, model string) *Client {
	apiKey := os.Getenv("BOTHUB_ACCESS_TOKEN")
	if apiKey == "" {
		apiKey = os.Getenv("AI_API_KEY")
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// portfolioPrompt — промпт структурированной генерации. Встроенный пример
// задаёт точную форму ответа: ровно 3 элемента, image_url в виде data URI
// с MIME типом и base64 пейлоадом (заглушка, которую позже перезапишет
// генерация изображений).
const portfolioPrompt = `Ты — эксперт по созданию маркетинговых портфолио. Ты креативен и умеешь придумывать реалистичные примеры работ по заданной маркетинговой стратегии и отрасли.

Придумай 3 элемента портфолио для следующей стратегии и отрасли:

Маркетинговая стратегия: %s
Отрасль: %s

У каждого элемента должны быть title, description и image_url. Поле image_url — data URI, обязательно с MIME типом и base64 кодировкой: 'data:<mimetype>;base64,<encoded_data>'.

Ответь строго JSON объектом по следующему образцу, без пояснений:
{
  "portfolio_items": [
    {
      "title": "Example Title",
      "description": "Example Description",
      "image_url": "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAUAAAAFCAYAAACNbyblAAAAHElEQVQI12P4//8/w+r8JxqFI050AAAQJAA9+cZyJAAAAABJRU5ErkJggg=="
    },
    {
      "title": "Example Title 2",
      "description": "Example Description 2",
      "image_url": "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAUAAAAFCAYAAACNbyblAAAAHElEQVQI12P4//8/w+r8JxqFI050AAAQJAA9+cZyJAAAAABJRU5ErkJggg=="
    },
    {
      "title": "Example Title 3",
      "description": "Example Description 3",
      "image_url": "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAUAAAAFCAYAAACNbyblAAAAHElEQVQI12P4//8/w+r8JxqFI050AAAQJAA9+cZyJAAAAABJRU5ErkJggg=="
    }
  ]
}`

// GeneratePortfolioItems выполняет один структурированный запрос и возвращает
// элементы портфолио в порядке, в котором их вернула модель.
func (c *Client) GeneratePortfolioItems(ctx context.Context, industry, strategy string) ([]models.GeneratedPortfolioItem, error) {
	messages := []map[string]string{
		{"role": "user", "content": fmt.Sprintf(portfolioPrompt, strategy, industry)},
	}

	content, err := c.chatCompletionWithOptions(ctx, messages, 2048, 0.8)
	if err != nil {
		return nil, err
	}

	items, ok := ParsePortfolioItems(content)
	if !ok {
		return nil, fmt.Errorf("ai: не удалось разобрать ответ модели")
	}

	return items, nil
}

// chatCompletion выполняет запрос к OpenAI-совместимому API с параметрами по умолчанию.
func (c *Client) chatCompletion(ctx context.Context, messages []map[string]string) (string, error) {
	return c.chatCompletionWithOptions(ctx, messages, 1024, 0.7)
}

// chatCompletionWithOptions выполняет запрос с настраиваемыми параметрами.
func (c *Client) chatCompletionWithOptions(ctx context.Context, messages []map[string]string, maxTokens int, temperature float64) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("ai: baseURL не задан")
	}

	payload := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := c.baseURL
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	url += "chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("ai: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("ai: пустой ответ")
	}

	return result.Choices[0].Message.Content, nil
}

// ParsePortfolioItems извлекает элементы портфолио из текста ответа модели,
// который может содержать markdown или пояснения вокруг JSON.
func ParsePortfolioItems(text string) ([]models.GeneratedPortfolioItem, bool) {
	raw, ok := extractJSON(text)
	if !ok {
		return nil, false
	}

	var parsed struct {
		PortfolioItems []models.GeneratedPortfolioItem `json:"portfolio_items"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, false
	}

	return parsed.PortfolioItems, true
}

// extractJSON пытается найти JSON объект в тексте: сначала по фигурным
// скобкам, затем в markdown блоке кода.
func extractJSON(text string) (string, bool) {
	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart != -1 && jsonEnd != -1 && jsonEnd > jsonStart {
		candidate := text[jsonStart : jsonEnd+1]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	if strings.Contains(text, "```") {
		codeBlockMatch := regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```").FindStringSubmatch(text)
		if len(codeBlockMatch) > 1 && json.Valid([]byte(codeBlockMatch[1])) {
			return codeBlockMatch[1], true
		}
	}

	return "", false
}
