package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.FreelancerProfile) error
	Update(ctx context.Context, profile *entity.FreelancerProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FreelancerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FreelancerProfile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FreelancerProfile, error)
	List(ctx context.Context, filter ProfileFilter) ([]*entity.FreelancerProfile, int, error)
	Approve(ctx context.Context, id uuid.UUID) error
}

// ProfileFilter - фильтры каталога исполнителей. В выборку попадают только одобренные профили.
type ProfileFilter struct {
	Category    string
	IsAvailable *bool
	Search      string
	Location    string
	Skill       string
	Limit       int
	Offset      int
}
