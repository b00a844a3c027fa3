package models

import (
	"strings"
	"time"
)

// Theme selects the visual world a learner plays in
type Theme string

const (
	ThemeSparkle Theme = "sparkle"
	ThemeLego    Theme = "lego"
)

// InputMethod is how a learner enters answers
type InputMethod string

const (
	InputMultipleChoice InputMethod = "multiple-choice"
	InputNumberPad      InputMethod = "number-pad"
)

// Operation is an arithmetic operation kind
type Operation string

const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
)

// Symbol returns the operator symbol used in fact keys
func (o Operation) Symbol() string {
	switch o {
	case OpAddition:
		return "+"
	case OpSubtraction:
		return "-"
	case OpMultiplication:
		return "x"
	case OpDivision:
		return "/"
	}
	return "?"
}

// Difficulty controls problem generation ranges
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Profile represents a learner in the system
type Profile struct {
	ID                string
	Name              string
	Theme             Theme
	AvatarID          string
	InputMethod       InputMethod
	EnabledOperations []Operation
	Difficulty        Difficulty
	CreatedAt         time.Time
	LastActiveAt      time.Time
}

// OperationsToString serializes an operation set for storage as a comma-separated list
func OperationsToString(ops []Operation) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, ",")
}

// OperationsFromString parses a stored comma-separated operation list.
// Records written before operations were configurable have an empty column;
// those default to multiplication only.
func OperationsFromString(s string) []Operation {
	if strings.TrimSpace(s) == "" {
		return []Operation{OpMultiplication}
	}

	var ops []Operation
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ops = append(ops, Operation(part))
		}
	}
	if len(ops) == 0 {
		return []Operation{OpMultiplication}
	}
	return ops
}
