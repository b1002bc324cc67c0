package job

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
)

type CreateJobInput struct {
	ClientID            uuid.UUID
	Title               string
	Description         string
	JobDate             *time.Time
	DurationType        string
	HoursOrDays         int
	Price               float64
	FreelancerProfileID *uuid.UUID
}

type CreateJobUseCase struct {
	jobRepo     repository.JobRepository
	profileRepo repository.ProfileRepository
}

func NewCreateJobUseCase(jobRepo repository.JobRepository, profileRepo repository.ProfileRepository) *CreateJobUseCase {
	return &CreateJobUseCase{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
	}
}

// Execute создаёт заказ в статусе pending. Если указан профиль, исполнитель
// назначается сразу и отклики на заказ не принимаются.
func (uc *CreateJobUseCase) Execute(ctx context.Context, input CreateJobInput) (*entity.Job, error) {
	if input.FreelancerProfileID != nil {
		if _, err := uc.profileRepo.FindByID(ctx, *input.FreelancerProfileID); err != nil {
			return nil, err
		}
	}

	job, err := entity.NewJob(input.ClientID, entity.NewJobParams{
		Title:        input.Title,
		Description:  input.Description,
		JobDate:      input.JobDate,
		DurationType: input.DurationType,
		HoursOrDays:  input.HoursOrDays,
		Price:        input.Price,
		FreelancerID: input.FreelancerProfileID,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	logger.WithComponent("jobs").
		WithField("job_id", job.ID).
		WithField("client_id", job.ClientID).
		Info("job created")
	return job, nil
}
