package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// Application - отклик исполнителя вместе с кратким описанием заказа.
type Application struct {
	JobID     uuid.UUID
	Title     string
	Client    *entity.UserSummary
	JobStatus valueobject.JobStatus
	Proposal  entity.Proposal
}

type MyApplicationsUseCase struct {
	jobRepo     repository.JobRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewMyApplicationsUseCase(
	jobRepo repository.JobRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
) *MyApplicationsUseCase {
	return &MyApplicationsUseCase{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (uc *MyApplicationsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.New(apperror.ErrCodeValidation, "please create a profile first")
		}
		return nil, err
	}

	jobs, err := uc.jobRepo.FindByProposalAuthor(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	clientIDs := make([]uuid.UUID, len(jobs))
	for i, j := range jobs {
		clientIDs[i] = j.ClientID
	}
	clients, err := uc.userRepo.FindSummaries(ctx, clientIDs)
	if err != nil {
		return nil, err
	}

	result := make([]Application, 0, len(jobs))
	for _, j := range jobs {
		proposal, ok := j.ProposalFrom(profile.ID)
		if !ok {
			continue
		}
		app := Application{
			JobID:     j.ID,
			Title:     j.Title,
			JobStatus: j.Status,
			Proposal:  *proposal,
		}
		if c, ok := clients[j.ClientID]; ok {
			c := c
			app.Client = &c
		}
		result = append(result, app)
	}
	return result, nil
}
