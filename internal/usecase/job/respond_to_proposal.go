package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/metrics"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type RespondToProposalInput struct {
	JobID      uuid.UUID
	ClientID   uuid.UUID
	ProposalID uuid.UUID
	Action     string
}

type RespondToProposalUseCase struct {
	jobRepo repository.JobRepository
}

func NewRespondToProposalUseCase(jobRepo repository.JobRepository) *RespondToProposalUseCase {
	return &RespondToProposalUseCase{jobRepo: jobRepo}
}

// Execute принимает или отклоняет отклик. Запись условна по версии заказа,
// проигравший гонку получает конфликт без частичных изменений.
func (uc *RespondToProposalUseCase) Execute(ctx context.Context, input RespondToProposalInput) (*entity.Job, error) {
	job, err := uc.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(input.ClientID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "you are not authorized to manage this job")
	}
	if _, ok := job.FindProposal(input.ProposalID); !ok {
		return nil, apperror.ErrProposalNotFound
	}

	action, err := valueobject.NewProposalAction(input.Action)
	if err != nil {
		return nil, err
	}
	if err := job.RespondToProposal(input.ProposalID, action); err != nil {
		return nil, err
	}

	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if action == valueobject.ProposalActionAccept {
		metrics.RecordJobTransition(string(valueobject.JobStatusAccepted))
	}
	logger.WithComponent("jobs").
		WithField("job_id", job.ID).
		WithField("proposal_id", input.ProposalID).
		WithField("action", action).
		Info("proposal answered")
	return job, nil
}
