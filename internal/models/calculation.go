package models

import (
	"time"

	"github.com/google/uuid"
)

// Operation — тип арифметической операции.
type Operation string

const (
	OperationAddition       Operation = "addition"
	OperationSubtraction    Operation = "subtraction"
	OperationMultiplication Operation = "multiplication"
	OperationDivision       Operation = "division"
)

// Valid сообщает, известен ли тип операции.
func (o Operation) Valid() bool {
	switch o {
	case OperationAddition, OperationSubtraction, OperationMultiplication, OperationDivision:
		return true
	}

	return false
}

// Calculation — запись вычисления, принадлежащая одному пользователю.
// Result всегда вычисляется сервером по Type и Inputs.
type Calculation struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Operation
	Inputs    []float64
	Result    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
