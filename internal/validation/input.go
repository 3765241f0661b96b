package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinIndustryLength             = 3
	MaxIndustryLength             = 50
	MinStrategyLength             = 10
	MaxStrategyLength             = 200
	MinPortfolioTitleLength       = 1
	MaxPortfolioTitleLength       = 200
	MinPortfolioDescriptionLength = 1
	MaxPortfolioDescriptionLength = 2000
	MinImageHintLength            = 1
	MaxImageHintLength            = 100
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateIndustry проверяет название отрасли для генерации портфолио.
func ValidateIndustry(industry string) error {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return fmt.Errorf("отрасль обязательна")
	}
	return ValidateLength("отрасль", industry, MinIndustryLength, MaxIndustryLength)
}

// ValidateMarketingStrategy проверяет описание маркетинговой стратегии.
func ValidateMarketingStrategy(strategy string) error {
	strategy = strings.TrimSpace(strategy)
	if strategy == "" {
		return fmt.Errorf("маркетинговая стратегия обязательна")
	}
	return ValidateLength("маркетинговая стратегия", strategy, MinStrategyLength, MaxStrategyLength)
}

// ValidatePortfolioTitle проверяет заголовок работы в витрине.
func ValidatePortfolioTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("название работы обязательно")
	}
	return ValidateLength("название работы", title, MinPortfolioTitleLength, MaxPortfolioTitleLength)
}

// ValidatePortfolioDescription проверяет описание работы в витрине.
func ValidatePortfolioDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("описание работы обязательно")
	}
	return ValidateLength("описание работы", description, MinPortfolioDescriptionLength, MaxPortfolioDescriptionLength)
}

// ValidateImageHint проверяет подсказку для изображения.
func ValidateImageHint(hint string) error {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return fmt.Errorf("подсказка для изображения обязательна")
	}
	return ValidateLength("подсказка для изображения", hint, MinImageHintLength, MaxImageHintLength)
}
