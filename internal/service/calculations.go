package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-calc-service/internal/models"
	"github.com/pribylovaa/go-calc-service/internal/pkg/log"
	"github.com/pribylovaa/go-calc-service/internal/storage"
)

// compute выполняет операцию над операндами левой свёрткой.
// Деление на ноль — ErrDivisionByZero, паники нет.
func compute(op models.Operation, inputs []float64) (float64, error) {
	if !op.Valid() {
		return 0, ErrUnsupportedOperation
	}

	if len(inputs) < 2 {
		return 0, ErrNotEnoughInputs
	}

	result := inputs[0]
	for _, v := range inputs[1:] {
		switch op {
		case models.OperationAddition:
			result += v
		case models.OperationSubtraction:
			result -= v
		case models.OperationMultiplication:
			result *= v
		case models.OperationDivision:
			if v == 0 {
				return 0, ErrDivisionByZero
			}
			result /= v
		}
	}

	return result, nil
}

// CreateCalculation вычисляет результат и сохраняет новую запись пользователя.
func (s *Service) CreateCalculation(ctx context.Context, userID uuid.UUID, op models.Operation, inputs []float64) (*models.Calculation, error) {
	const fnOp = "service.calculations.CreateCalculation"

	result, err := compute(op, inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnOp, err)
	}

	now := s.now()
	calc := &models.Calculation{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      op,
		Inputs:    inputs,
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveCalculation(ctx, calc); err != nil {
		return nil, fmt.Errorf("%s: %w", fnOp, err)
	}

	log.From(ctx).Info("calculation_created",
		slog.String("op", fnOp),
		slog.String("calculation_id", calc.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return calc, nil
}

// CalculationByID возвращает запись вычисления пользователя.
func (s *Service) CalculationByID(ctx context.Context, userID, id uuid.UUID) (*models.Calculation, error) {
	const op = "service.calculations.CalculationByID"

	calc, err := s.storage.CalculationByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCalculationNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

// ListCalculations возвращает все записи пользователя, новые первыми.
func (s *Service) ListCalculations(ctx context.Context, userID uuid.UUID) ([]models.Calculation, error) {
	const op = "service.calculations.ListCalculations"

	calcs, err := s.storage.CalculationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return calcs, nil
}

// UpdateCalculation заменяет тип и операнды записи и пересчитывает результат.
func (s *Service) UpdateCalculation(ctx context.Context, userID, id uuid.UUID, op models.Operation, inputs []float64) (*models.Calculation, error) {
	const fnOp = "service.calculations.UpdateCalculation"

	result, err := compute(op, inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnOp, err)
	}

	calc, err := s.storage.CalculationByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", fnOp, ErrCalculationNotFound)
		}

		return nil, fmt.Errorf("%s: %w", fnOp, err)
	}

	calc.Type = op
	calc.Inputs = inputs
	calc.Result = result
	calc.UpdatedAt = s.now()

	if err := s.storage.UpdateCalculation(ctx, calc); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", fnOp, ErrCalculationNotFound)
		}

		return nil, fmt.Errorf("%s: %w", fnOp, err)
	}

	return calc, nil
}

// DeleteCalculation удаляет запись вычисления пользователя.
func (s *Service) DeleteCalculation(ctx context.Context, userID, id uuid.UUID) error {
	const op = "service.calculations.DeleteCalculation"

	if err := s.storage.DeleteCalculation(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrCalculationNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("calculation_deleted",
		slog.String("op", op),
		slog.String("calculation_id", id.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
