package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	pincodeRegex  = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	hasLower      = regexp.MustCompile(`[a-z]`)
	hasUpper      = regexp.MustCompile(`[A-Z]`)
	hasNumber     = regexp.MustCompile(`[0-9]`)
)

// SanitizeString escapes HTML and strips any remaining tags from user input
func SanitizeString(input string) string {
	sanitized := html.EscapeString(strings.TrimSpace(input))
	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	return htmlTagRegex.ReplaceAllString(sanitized, "")
}

// ValidateUsername checks username format
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-20 characters of letters, numbers or underscore")
	}
	return nil
}

// ValidateEmail checks email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePhone checks phone number format
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

// ValidatePincode checks delivery pincode format
func ValidatePincode(pincode string) error {
	if !pincodeRegex.MatchString(pincode) {
		return fmt.Errorf("invalid pincode")
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// lower case, upper case and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) || !hasNumber.MatchString(password) {
		return fmt.Errorf("password must contain lower case, upper case and a digit")
	}
	return nil
}

// ValidateCouponValue enforces discount value bounds per coupon kind.
// Percentage coupons are capped at 90 so a coupon can never zero out an
// order on its own.
func ValidateCouponValue(kind string, value int64) error {
	if value <= 0 {
		return fmt.Errorf("discount value must be positive")
	}
	if kind == "PERCENTAGE" && value > 90 {
		return fmt.Errorf("percentage discount cannot exceed 90")
	}
	return nil
}
