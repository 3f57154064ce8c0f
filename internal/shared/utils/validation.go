package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// String length limits
const (
	MaxIDLength          = 64
	MaxNameLength        = 128
	MaxTitleLength       = 256
	MaxDescriptionLength = 2048
	MaxCategoryLength    = 64
	MaxIconLength        = 16
	MaxContentSize       = 64 * 1024
)

// MaxWindowDimension bounds the window size a manifest may request.
const MaxWindowDimension = 8192

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// CategoryPattern allows lowercase letters, numbers, and hyphens
	CategoryPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if value == "" {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}
	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}
	return nil
}

// ValidateName validates a name field
func ValidateName(name, fieldName string) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, true)
}

// ValidateCategory validates a category field
func ValidateCategory(category string, required bool) error {
	if err := ValidateString(category, "category", 0, MaxCategoryLength, required); err != nil {
		return err
	}
	if category != "" && !CategoryPattern.MatchString(category) {
		return fmt.Errorf("category must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}

// ValidateManifest checks every field of an app manifest.
func ValidateManifest(m types.Manifest) error {
	if err := ValidateID(m.ID, "id", true); err != nil {
		return err
	}
	if err := ValidateName(m.Name, "name"); err != nil {
		return err
	}
	if err := ValidateString(m.Icon, "icon", 0, MaxIconLength, false); err != nil {
		return err
	}
	if err := ValidateString(m.Title, "title", 0, MaxTitleLength, false); err != nil {
		return err
	}
	if err := ValidateString(m.Description, "description", 0, MaxDescriptionLength, false); err != nil {
		return err
	}
	if err := ValidateCategory(m.Category, false); err != nil {
		return err
	}
	if len(m.Content) > MaxContentSize {
		return fmt.Errorf("content must not exceed %d bytes", MaxContentSize)
	}
	return validateWindow(m.Window)
}

func validateWindow(w types.WindowSize) error {
	if w.Width < 0 || w.Height < 0 {
		return fmt.Errorf("window size must not be negative")
	}
	if w.Width > MaxWindowDimension || w.Height > MaxWindowDimension {
		return fmt.Errorf("window size must not exceed %d", MaxWindowDimension)
	}
	return nil
}
