package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя в системе.
// Username и Email уникальны; логин принимает любой из них.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
