// Package validation holds input checks shared by services and handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"numbergalaxy/internal/models"
)

var pinRegex = regexp.MustCompile(`^\d{4}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateProfileName checks a learner's display name
func ValidateProfileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > 50 {
		return ValidationError{Field: "name", Message: "name must be 50 characters or fewer"}
	}
	return nil
}

// ValidatePin checks the parental PIN format (exactly four digits)
func ValidatePin(pin string) error {
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "pin", Message: "PIN must be exactly 4 digits"}
	}
	return nil
}

// ValidateTableNumber checks a table identifier against the fixed catalog
func ValidateTableNumber(table int) error {
	if table < models.MinTableNumber || table > models.MaxTableNumber {
		return ValidationError{Field: "table", Message: fmt.Sprintf("table must be between %d and %d", models.MinTableNumber, models.MaxTableNumber)}
	}
	return nil
}

// ValidateScore checks a quiz score percentage
func ValidateScore(score int) error {
	if score < 0 || score > 100 {
		return ValidationError{Field: "score", Message: "score must be between 0 and 100"}
	}
	return nil
}

// ValidateOperations checks an operation set for profile updates
func ValidateOperations(ops []models.Operation) error {
	known := map[models.Operation]bool{
		models.OpAddition:       true,
		models.OpSubtraction:    true,
		models.OpMultiplication: true,
		models.OpDivision:       true,
	}
	for _, op := range ops {
		if !known[op] {
			return ValidationError{Field: "operations", Message: fmt.Sprintf("unknown operation %q", op)}
		}
	}
	return nil
}
