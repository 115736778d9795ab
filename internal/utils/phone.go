package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nonPhoneChars = regexp.MustCompile(`[^\d+]`)
)

func IsValidPhone(phone string) bool {
	cleaned := nonPhoneChars.ReplaceAllString(phone, "")

	// Basic E.164 format validation
	return phoneRegex.MatchString(cleaned)
}

func NormalizePhone(phone string) string {
	normalized := nonPhoneChars.ReplaceAllString(phone, "")

	if !strings.HasPrefix(normalized, "+") {
		normalized = "+" + normalized
	}

	return normalized
}

func MaskPhone(phone string) string {
	normalized := NormalizePhone(phone)
	if len(normalized) <= 4 {
		return normalized
	}

	return strings.Repeat("*", len(normalized)-4) + normalized[len(normalized)-4:]
}
