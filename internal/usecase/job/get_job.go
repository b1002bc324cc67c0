package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// JobDetails - заказ с раскрытыми ссылками на клиента, исполнителя, платёж
// и авторов откликов.
type JobDetails struct {
	Job             *entity.Job
	Client          *entity.UserSummary
	Freelancer      *entity.FreelancerProfile
	Payment         *entity.Payment
	ProposalAuthors map[uuid.UUID]*entity.FreelancerProfile
}

type expander struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	paymentRepo repository.PaymentRepository
}

// expand раскрывает ссылки пачкой, без запроса на каждый заказ.
func (e *expander) expand(ctx context.Context, jobs []*entity.Job, withPayments bool) ([]*JobDetails, error) {
	profileIDs := make([]uuid.UUID, 0)
	seenProfiles := make(map[uuid.UUID]bool)
	addProfile := func(id uuid.UUID) {
		if !seenProfiles[id] {
			seenProfiles[id] = true
			profileIDs = append(profileIDs, id)
		}
	}
	for _, j := range jobs {
		if j.FreelancerID != nil {
			addProfile(*j.FreelancerID)
		}
		for _, p := range j.Proposals {
			addProfile(p.FreelancerProfileID)
		}
	}

	profiles, err := e.profileRepo.FindByIDs(ctx, profileIDs)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(jobs)+len(profiles))
	for _, j := range jobs {
		userIDs = append(userIDs, j.ClientID)
	}
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
	}
	users, err := e.userRepo.FindSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if u, ok := users[p.UserID]; ok {
			u := u
			p.User = &u
		}
	}

	result := make([]*JobDetails, 0, len(jobs))
	for _, j := range jobs {
		d := &JobDetails{
			Job:             j,
			ProposalAuthors: make(map[uuid.UUID]*entity.FreelancerProfile, len(j.Proposals)),
		}
		if u, ok := users[j.ClientID]; ok {
			u := u
			d.Client = &u
		}
		if j.FreelancerID != nil {
			d.Freelancer = profiles[*j.FreelancerID]
		}
		for _, p := range j.Proposals {
			if author, ok := profiles[p.FreelancerProfileID]; ok {
				d.ProposalAuthors[p.FreelancerProfileID] = author
			}
		}
		if withPayments && j.PaymentID != nil {
			payment, err := e.paymentRepo.FindByID(ctx, *j.PaymentID)
			if err != nil && !apperror.IsNotFound(err) {
				return nil, err
			}
			d.Payment = payment
		}
		result = append(result, d)
	}
	return result, nil
}

func (e *expander) expandOne(ctx context.Context, job *entity.Job, withPayment bool) (*JobDetails, error) {
	details, err := e.expand(ctx, []*entity.Job{job}, withPayment)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// paymentVisible решает, раскрывать ли платёж заказа для вызывающего.
func (e *expander) paymentVisible(ctx context.Context, job *entity.Job, caller *entity.Identity) (bool, error) {
	if caller == nil || job.PaymentID == nil {
		return false, nil
	}
	var profileID *uuid.UUID
	if caller.Role == valueobject.RoleFreelancer && job.FreelancerID != nil {
		profile, err := e.profileRepo.FindByUserID(ctx, caller.ID)
		if err != nil && !apperror.IsNotFound(err) {
			return false, err
		}
		if profile != nil {
			profileID = &profile.ID
		}
	}
	return job.PaymentVisibleTo(*caller, profileID), nil
}

type GetJobUseCase struct {
	jobRepo repository.JobRepository
	expander
}

func NewGetJobUseCase(
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	paymentRepo repository.PaymentRepository,
) *GetJobUseCase {
	return &GetJobUseCase{
		jobRepo:  jobRepo,
		expander: expander{userRepo: userRepo, profileRepo: profileRepo, paymentRepo: paymentRepo},
	}
}

// Execute возвращает заказ. Платёж раскрывается только тем, кому он виден;
// анонимный caller (nil) платёж не получает.
func (uc *GetJobUseCase) Execute(ctx context.Context, jobID uuid.UUID, caller *entity.Identity) (*JobDetails, error) {
	job, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	withPayment, err := uc.paymentVisible(ctx, job, caller)
	if err != nil {
		return nil, err
	}
	return uc.expandOne(ctx, job, withPayment)
}

const maxJobPageSize = 100

type ListJobsInput struct {
	Caller       *entity.Identity
	Status       string
	DurationType string
	Search       string
	Limit        int
	Offset       int
}

type ListJobsUseCase struct {
	jobRepo repository.JobRepository
	expander
}

func NewListJobsUseCase(
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) *ListJobsUseCase {
	return &ListJobsUseCase{
		jobRepo:  jobRepo,
		expander: expander{userRepo: userRepo, profileRepo: profileRepo},
	}
}

// Execute возвращает заказы, новые первыми. Клиент видит только свои заказы,
// исполнитель с профилем - назначенные ему, остальные - все.
func (uc *ListJobsUseCase) Execute(ctx context.Context, input ListJobsInput) ([]*JobDetails, error) {
	if input.Limit > maxJobPageSize {
		input.Limit = maxJobPageSize
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	filter := repository.JobFilter{
		Status:       input.Status,
		DurationType: input.DurationType,
		Search:       input.Search,
		Limit:        input.Limit,
		Offset:       input.Offset,
	}

	if input.Caller != nil {
		switch input.Caller.Role {
		case valueobject.RoleClient:
			filter.ClientID = &input.Caller.ID
		case valueobject.RoleFreelancer:
			profile, err := uc.profileRepo.FindByUserID(ctx, input.Caller.ID)
			if err != nil && !apperror.IsNotFound(err) {
				return nil, err
			}
			if profile != nil {
				filter.FreelancerID = &profile.ID
			}
		}
	}

	jobs, err := uc.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.expand(ctx, jobs, false)
}
