package repository

import (
	"context"

	"github.com/arslanrestlos/terminbuchung/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	CountActive(ctx context.Context) (int64, error)
}
