package catalog

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProduct matches every *ValidationError via errors.Is.
var ErrInvalidProduct = errors.New("invalid product")

// Issue is a single validation finding
type Issue struct {
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error" or "warning"
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s - %s", i.Severity, i.Code, i.Field, i.Message)
}

// ValidationResult holds all findings for a product
type ValidationResult struct {
	Code     string
	IsValid  bool
	Errors   []Issue
	Warnings []Issue
}

// ValidationError is returned by catalog mutations that receive an invalid product.
type ValidationError struct {
	Code   string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		msgs = append(msgs, i.Field+": "+i.Message)
	}
	return fmt.Sprintf("invalid product %q: %s", e.Code, strings.Join(msgs, "; "))
}

// Is reports ErrInvalidProduct as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidProduct
}

// Err returns a *ValidationError when the result has errors, nil otherwise.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return &ValidationError{Code: r.Code, Issues: r.Errors}
}

// Validate validates a single product
func Validate(p Product) ValidationResult {
	result := ValidationResult{
		Code:     p.Code,
		IsValid:  true,
		Errors:   make([]Issue, 0),
		Warnings: make([]Issue, 0),
	}

	result.checkRequired(p.Code, "code", p.Code)
	result.checkRequired(p.Code, "description", p.Description)

	if len(p.Keywords) == 0 {
		result.addError(p.Code, "keywords", "at least one keyword required")
	}

	seen := make(map[string]bool)
	for i, k := range p.Keywords {
		text := strings.ToLower(strings.TrimSpace(k.Text))
		if text == "" {
			result.addError(p.Code, fmt.Sprintf("keywords[%d]", i), "empty keyword")
			continue
		}
		if seen[text] {
			result.addWarning(p.Code, fmt.Sprintf("keywords[%d]", i),
				fmt.Sprintf("duplicate keyword %q", text))
		}
		seen[text] = true
	}

	if p.Image != "" {
		if _, err := DecodeImage(p.Image); err != nil {
			result.addError(p.Code, "image", err.Error())
		}
	}

	if strings.TrimSpace(p.Code) != p.Code {
		result.addWarning(p.Code, "code", "leading or trailing whitespace")
	}

	return result
}

// ValidateAll validates all products and returns results
func ValidateAll(products []Product) []ValidationResult {
	results := make([]ValidationResult, 0, len(products))
	for _, p := range products {
		results = append(results, Validate(p))
	}
	return results
}

// DecodeImage decodes a base64 image, accepting a "data:<mime>;base64," prefix.
func DecodeImage(image string) ([]byte, error) {
	payload := image
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx < 0 {
			return nil, errors.New("data URL must be base64 encoded")
		}
		payload = payload[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return data, nil
}

func (r *ValidationResult) checkRequired(code, field, value string) {
	if strings.TrimSpace(value) == "" {
		r.addError(code, field, "required field is empty")
	}
}

func (r *ValidationResult) addError(code, field, message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, Issue{
		Code:     code,
		Field:    field,
		Message:  message,
		Severity: "error",
	})
}

func (r *ValidationResult) addWarning(code, field, message string) {
	r.Warnings = append(r.Warnings, Issue{
		Code:     code,
		Field:    field,
		Message:  message,
		Severity: "warning",
	})
}
