package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type UpdateProfileInput struct {
	ProfileID uuid.UUID
	Caller    entity.Identity
	Fields    entity.ProfileFields
}

type UpdateProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewUpdateProfileUseCase(profileRepo repository.ProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: profileRepo}
}

// Execute обновляет профиль. Править может владелец профиля или администратор.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.FreelancerProfile, error) {
	profile, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	if !profile.IsOwnedBy(input.Caller.ID) && input.Caller.Role != valueobject.RoleAdmin {
		return nil, apperror.New(apperror.ErrCodeForbidden, "you are not authorized to update this profile")
	}

	if err := profile.Apply(input.Fields); err != nil {
		return nil, err
	}
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	logger.WithComponent("profiles").
		WithField("profile_id", profile.ID).
		WithField("updated_by", input.Caller.ID).
		Info("profile updated")
	return profile, nil
}

type ApproveProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewApproveProfileUseCase(profileRepo repository.ProfileRepository) *ApproveProfileUseCase {
	return &ApproveProfileUseCase{profileRepo: profileRepo}
}

func (uc *ApproveProfileUseCase) Execute(ctx context.Context, profileID uuid.UUID) (*entity.FreelancerProfile, error) {
	if err := uc.profileRepo.Approve(ctx, profileID); err != nil {
		return nil, err
	}
	return uc.profileRepo.FindByID(ctx, profileID)
}
