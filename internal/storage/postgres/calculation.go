package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-calc-service/internal/models"
	"github.com/pribylovaa/go-calc-service/internal/storage"
)

// calcColumns — единый список колонок таблицы calculations.
const calcColumns = `
id, user_id, type, inputs, result, created_at, updated_at
`

// scanCalculation сканирует одну строку вычисления в доменную модель.
func scanCalculation(row pgx.Row) (*models.Calculation, error) {
	var calc models.Calculation
	var opType string

	if err := row.Scan(
		&calc.ID,
		&calc.UserID,
		&opType,
		&calc.Inputs,
		&calc.Result,
		&calc.CreatedAt,
		&calc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	calc.Type = models.Operation(opType)

	return &calc, nil
}

// SaveCalculation создает новую запись вычисления.
func (s *Storage) SaveCalculation(ctx context.Context, calc *models.Calculation) error {
	const op = "storage.postgres.SaveCalculation"

	query := `
		INSERT INTO calculations(id, user_id, type, inputs, result, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.Exec(ctx, query,
		calc.ID,
		calc.UserID,
		string(calc.Type),
		calc.Inputs,
		calc.Result,
		calc.CreatedAt,
		calc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CalculationByID возвращает запись вычисления пользователя.
// Чужие записи не видны: фильтр по (id, user_id) даёт storage.ErrNotFound.
func (s *Storage) CalculationByID(ctx context.Context, userID, id uuid.UUID) (*models.Calculation, error) {
	const op = "storage.postgres.CalculationByID"

	query := `
		SELECT ` + calcColumns + `
		FROM calculations
		WHERE id = $1 AND user_id = $2
	`

	calc, err := scanCalculation(s.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

// CalculationsByUser возвращает все записи пользователя, новые первыми.
func (s *Storage) CalculationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Calculation, error) {
	const op = "storage.postgres.CalculationsByUser"

	query := `
		SELECT ` + calcColumns + `
		FROM calculations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.Calculation
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, *calc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateCalculation обновляет тип/входы/результат записи и сдвигает updated_at.
func (s *Storage) UpdateCalculation(ctx context.Context, calc *models.Calculation) error {
	const op = "storage.postgres.UpdateCalculation"

	query := `
		UPDATE calculations
		SET type = $3, inputs = $4, result = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`

	tag, err := s.db.Exec(ctx, query,
		calc.ID,
		calc.UserID,
		string(calc.Type),
		calc.Inputs,
		calc.Result,
		calc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteCalculation удаляет запись вычисления пользователя.
func (s *Storage) DeleteCalculation(ctx context.Context, userID, id uuid.UUID) error {
	const op = "storage.postgres.DeleteCalculation"

	query := `DELETE FROM calculations WHERE id = $1 AND user_id = $2`

	tag, err := s.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
