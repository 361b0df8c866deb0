package entity

import "time"

// Роли пользователей бэк-офиса.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
)

// User — пользователь системы (бухгалтер или администратор).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
