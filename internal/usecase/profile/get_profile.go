package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// attachUsers подставляет краткие данные владельцев одним запросом.
func attachUsers(ctx context.Context, userRepo repository.UserRepository, profiles ...*entity.FreelancerProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
	}
	users, err := userRepo.FindSummaries(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if u, ok := users[p.UserID]; ok {
			u := u
			p.User = &u
		}
	}
	return nil
}

type GetProfileUseCase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewGetProfileUseCase(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, profileID uuid.UUID) (*entity.FreelancerProfile, error) {
	profile, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := attachUsers(ctx, uc.userRepo, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Page - страница каталога исполнителей.
type Page struct {
	Profiles []*entity.FreelancerProfile
	Total    int
	Limit    int
	Offset   int
}

type ListProfilesUseCase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewListProfilesUseCase(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ListProfilesUseCase {
	return &ListProfilesUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (uc *ListProfilesUseCase) Execute(ctx context.Context, filter repository.ProfileFilter) (*Page, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	profiles, total, err := uc.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := attachUsers(ctx, uc.userRepo, profiles...); err != nil {
		return nil, err
	}

	return &Page{
		Profiles: profiles,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}
