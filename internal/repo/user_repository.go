package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/blog-api/internal/models"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}
