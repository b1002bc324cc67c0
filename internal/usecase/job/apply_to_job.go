package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/metrics"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type ApplyToJobInput struct {
	JobID         uuid.UUID
	UserID        uuid.UUID
	Message       string
	ProposedPrice *float64
}

type ApplyToJobUseCase struct {
	jobRepo     repository.JobRepository
	profileRepo repository.ProfileRepository
}

func NewApplyToJobUseCase(jobRepo repository.JobRepository, profileRepo repository.ProfileRepository) *ApplyToJobUseCase {
	return &ApplyToJobUseCase{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
	}
}

// Execute проверяет по порядку: профиль, заказ, отсутствие отклика. Сама
// запись отклика атомарна в хранилище, предварительная проверка только
// отсекает очевидные дубликаты.
func (uc *ApplyToJobUseCase) Execute(ctx context.Context, input ApplyToJobInput) (*entity.Proposal, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrProfileRequired
		}
		return nil, err
	}

	job, err := uc.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.HasProposalFrom(profile.ID) {
		return nil, apperror.ErrAlreadyApplied
	}
	if job.IsOwnedBy(input.UserID) {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "you cannot apply to your own job")
	}
	if err := job.CanReceiveProposals(); err != nil {
		return nil, err
	}

	proposal, err := entity.NewProposal(profile.ID, input.Message, input.ProposedPrice)
	if err != nil {
		return nil, err
	}

	if err := uc.jobRepo.AppendProposal(ctx, job.ID, proposal); err != nil {
		return nil, err
	}

	metrics.RecordProposal()
	logger.WithComponent("jobs").
		WithField("job_id", job.ID).
		WithField("profile_id", profile.ID).
		Info("proposal submitted")
	return proposal, nil
}
