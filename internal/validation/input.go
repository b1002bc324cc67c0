package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxNameLength        = 100
	MaxDisplayNameLength = 100
	MinJobTitleLength    = 3
	MaxJobTitleLength    = 200
	MaxDescriptionLength = 5000
	MaxMessageLength     = 2000
	MaxBioLength         = 1000
	MaxLocationLength    = 100
	MaxSkillLength       = 50
	MaxSkillsCount       = 50
	MaxPrice             = 100000000.0
	MaxHoursOrDays       = 10000
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return fmt.Errorf("email must contain exactly one @")
	}
	if len(local) == 0 || len(local) > 64 {
		return fmt.Errorf("email local part must be 1 to 64 characters")
	}
	if len(domain) == 0 || len(domain) > 255 {
		return fmt.Errorf("email domain must be 1 to 255 characters")
	}
	if !emailLocalRegex.MatchString(local) {
		return fmt.Errorf("email local part contains invalid characters")
	}
	if !emailDomainRegex.MatchString(domain) {
		return fmt.Errorf("email domain is malformed")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateJobTitle проверяет заголовок заказа.
func ValidateJobTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	return ValidateLength("title", title, MinJobTitleLength, MaxJobTitleLength)
}

// ValidatePrice проверяет цену: неотрицательная и в разумных пределах.
func ValidatePrice(fieldName string, price float64) error {
	if price < 0 {
		return fmt.Errorf("%s must not be negative", fieldName)
	}
	if price > MaxPrice {
		return fmt.Errorf("%s must not exceed %.0f", fieldName, MaxPrice)
	}
	return nil
}

// NormalizeSkills обрезает пробелы, выкидывает пустые значения и дубликаты
// (без учёта регистра), сохраняя порядок.
func NormalizeSkills(skills []string) ([]string, error) {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return out, fmt.Errorf("skill must be at most %d characters", MaxSkillLength)
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	if len(out) > MaxSkillsCount {
		return out, fmt.Errorf("no more than %d skills allowed", MaxSkillsCount)
	}
	return out, nil
}
