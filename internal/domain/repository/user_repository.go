package repository

import "github.com/dkairat/Esep-api/internal/domain/entity"

// UserRepository — порт персистентности пользователей.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
