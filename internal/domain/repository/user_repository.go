package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.UserSummary, error)
	List(ctx context.Context) ([]*entity.User, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	IsBanned(ctx context.Context, id uuid.UUID) (bool, error)
}
