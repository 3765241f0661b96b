package models

// GenerationRequest — запрос на генерацию портфолио.
type GenerationRequest struct {
	Industry          string `json:"industry"`
	MarketingStrategy string `json:"marketing_strategy"`
}

// GeneratedPortfolioItem — элемент портфолио, созданный AI.
// ImageURL изначально содержит data URI заглушку из текстовой генерации,
// после успешной генерации изображения перезаписывается ссылкой на медиа.
type GeneratedPortfolioItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// PortfolioGeneration — результат одного вызова генерации: ровно 3 элемента
// в порядке, в котором их вернула модель.
type PortfolioGeneration struct {
	PortfolioItems []GeneratedPortfolioItem `json:"portfolio_items"`
}

// GeneratedMedia — результат генерации изображения.
type GeneratedMedia struct {
	URL      string
	MimeType string
}
