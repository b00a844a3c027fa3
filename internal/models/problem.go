package models

import "strconv"

// MathProblem is the contract with the external problem generator.
// The core consumes problems and records their outcomes; it never creates them.
type MathProblem struct {
	Operand1       int
	Operand2       int
	Operation      Operation
	CorrectAnswer  int
	UserAnswer     *int
	IsCorrect      bool
	TimeToAnswerMs int
}

// FactKey returns the canonical key a problem's outcome is recorded under,
// e.g. "7x8" for 7×8 or "3+4" for 3+4.
func (p *MathProblem) FactKey() string {
	return FactKey(p.Operand1, p.Operation, p.Operand2)
}

// FactKey builds the canonical fact key for an operand pair
func FactKey(operand1 int, op Operation, operand2 int) string {
	return strconv.Itoa(operand1) + op.Symbol() + strconv.Itoa(operand2)
}
