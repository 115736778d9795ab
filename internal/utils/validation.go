package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("phone", validatePhone)
	validate.RegisterValidation("objectid", validateObjectID)
	validate.RegisterValidation("latitude", validateLatitude)
	validate.RegisterValidation("longitude", validateLongitude)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateObjectID(fl validator.FieldLevel) bool {
	return IsValidObjectID(fl.Field().String())
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}

// IsValidObjectID reports whether s is a syntactically valid 24-char hex id.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// IsValidCoordinates checks inclusive bounds on both axes.
func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

var regexMeta = regexp.MustCompile(`[\\.+*?()|\[\]{}^$]`)

// EscapeRegex neutralizes regex metacharacters in user input before it is
// embedded in a $regex filter.
func EscapeRegex(s string) string {
	return regexMeta.ReplaceAllStringFunc(s, func(m string) string {
		return "\\" + m
	})
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	return strings.TrimSpace(cleaned)
}
