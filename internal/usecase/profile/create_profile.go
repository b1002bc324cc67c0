package profile

import (
	"context"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type CreateProfileInput struct {
	Caller entity.Identity
	Fields entity.ProfileFields
}

type CreateProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewCreateProfileUseCase(profileRepo repository.ProfileRepository) *CreateProfileUseCase {
	return &CreateProfileUseCase{profileRepo: profileRepo}
}

// Execute создаёт профиль исполнителя. У пользователя может быть только один профиль.
func (uc *CreateProfileUseCase) Execute(ctx context.Context, input CreateProfileInput) (*entity.FreelancerProfile, error) {
	if input.Caller.Role != valueobject.RoleFreelancer {
		return nil, apperror.New(apperror.ErrCodeForbidden, "only freelancers can create a profile")
	}

	existing, err := uc.profileRepo.FindByUserID(ctx, input.Caller.ID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrProfileExists
	}

	fields := input.Fields
	if fields.DisplayName == nil {
		name := input.Caller.Name
		fields.DisplayName = &name
	}
	profile, err := entity.NewFreelancerProfile(input.Caller.ID, fields)
	if err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	summary := entity.UserSummary{ID: input.Caller.ID, Name: input.Caller.Name, Email: input.Caller.Email}
	profile.User = &summary

	logger.WithComponent("profiles").
		WithField("profile_id", profile.ID).
		WithField("user_id", profile.UserID).
		Info("profile created")
	return profile, nil
}
