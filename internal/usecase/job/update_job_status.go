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

type UpdateJobStatusInput struct {
	JobID      uuid.UUID
	CallerID   uuid.UUID
	CallerRole valueobject.Role
	Status     string
}

type UpdateJobStatusUseCase struct {
	jobRepo     repository.JobRepository
	profileRepo repository.ProfileRepository
}

func NewUpdateJobStatusUseCase(jobRepo repository.JobRepository, profileRepo repository.ProfileRepository) *UpdateJobStatusUseCase {
	return &UpdateJobStatusUseCase{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
	}
}

// Execute меняет статус заказа. Менять статус могут клиент заказа и назначенный
// исполнитель, завершить заказ - только клиент.
func (uc *UpdateJobStatusUseCase) Execute(ctx context.Context, input UpdateJobStatusInput) (*entity.Job, error) {
	job, err := uc.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	isClient := input.CallerRole == valueobject.RoleClient && job.IsOwnedBy(input.CallerID)
	isAssigned, err := uc.isAssignedFreelancer(ctx, job, input)
	if err != nil {
		return nil, err
	}
	if !isClient && !isAssigned {
		return nil, apperror.New(apperror.ErrCodeForbidden, "you are not authorized to update this job")
	}

	status, err := valueobject.NewJobStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if status == valueobject.JobStatusCompleted && !isClient {
		return nil, apperror.New(apperror.ErrCodeForbidden, "only the client can mark the job as completed")
	}

	previous := job.Status
	if err := job.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	metrics.RecordJobTransition(string(status))
	logger.WithComponent("jobs").
		WithField("job_id", job.ID).
		WithField("from", previous).
		WithField("to", status).
		Info("job status changed")
	return job, nil
}

func (uc *UpdateJobStatusUseCase) isAssignedFreelancer(ctx context.Context, job *entity.Job, input UpdateJobStatusInput) (bool, error) {
	if input.CallerRole != valueobject.RoleFreelancer || job.FreelancerID == nil {
		return false, nil
	}
	profile, err := uc.profileRepo.FindByUserID(ctx, input.CallerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return job.IsAssignedTo(profile.ID), nil
}
