package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-calc-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/вычисление).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (username/email).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByIdentifier находит пользователя по username или email.
	UserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CalculationStorage выполняет операции над записями вычислений.
// Все операции чтения/изменения ограничены владельцем (userID).
type CalculationStorage interface {
	// SaveCalculation создает новую запись вычисления.
	SaveCalculation(ctx context.Context, calc *models.Calculation) error
	// CalculationByID возвращает запись вычисления пользователя.
	CalculationByID(ctx context.Context, userID, id uuid.UUID) (*models.Calculation, error)
	// CalculationsByUser возвращает все записи пользователя (новые первыми).
	CalculationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Calculation, error)
	// UpdateCalculation обновляет тип/входы/результат записи.
	UpdateCalculation(ctx context.Context, calc *models.Calculation) error
	// DeleteCalculation удаляет запись вычисления пользователя.
	DeleteCalculation(ctx context.Context, userID, id uuid.UUID) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	CalculationStorage
	Close()
}
