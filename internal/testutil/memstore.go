// Package testutil содержит in-memory реализации репозиториев для тестов HTTP слоя.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// Store держит все сущности под одной блокировкой, повторяя гарантии
// условных UPDATE и транзакций PostgreSQL.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	profiles map[uuid.UUID]entity.FreelancerProfile
	jobs     map[uuid.UUID]*entity.Job
	payments map[uuid.UUID]entity.Payment
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		profiles: make(map[uuid.UUID]entity.FreelancerProfile),
		jobs:     make(map[uuid.UUID]*entity.Job),
		payments: make(map[uuid.UUID]entity.Payment),
	}
}

func (s *Store) Users() repository.UserRepository       { return userStore{s} }
func (s *Store) Profiles() repository.ProfileRepository { return profileStore{s} }
func (s *Store) Jobs() repository.JobRepository         { return jobStore{s} }
func (s *Store) Payments() repository.PaymentRepository { return paymentStore{s} }

func cloneJob(j *entity.Job) *entity.Job {
	cp := *j
	cp.Proposals = append([]entity.Proposal(nil), j.Proposals...)
	return &cp
}

type userStore struct{ *Store }

func (s userStore) Create(ctx context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return apperror.ErrEmailTaken
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s userStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	return &u, nil
}

func (s userStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = entity.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (s userStore) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]entity.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (s userStore) List(ctx context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (s userStore) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperror.ErrUserNotFound
	}
	u.IsBanned = banned
	s.users[id] = u
	return nil
}

func (s userStore) IsBanned(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, apperror.ErrUserNotFound
	}
	return u.IsBanned, nil
}

type profileStore struct{ *Store }

func (s profileStore) Create(ctx context.Context, p *entity.FreelancerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.profiles {
		if existing.UserID == p.UserID {
			return apperror.ErrProfileExists
		}
	}
	s.profiles[p.ID] = *p
	return nil
}

func (s profileStore) Update(ctx context.Context, p *entity.FreelancerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; !ok {
		return apperror.ErrProfileNotFound
	}
	s.profiles[p.ID] = *p
	return nil
}

func (s profileStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.FreelancerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperror.ErrProfileNotFound
	}
	return &p, nil
}

func (s profileStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FreelancerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, apperror.ErrProfileNotFound
}

func (s profileStore) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FreelancerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]*entity.FreelancerProfile, len(ids))
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			p := p
			out[id] = &p
		}
	}
	return out, nil
}

func (s profileStore) List(ctx context.Context, filter repository.ProfileFilter) ([]*entity.FreelancerProfile, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*entity.FreelancerProfile
	for _, p := range s.profiles {
		if !p.Approved {
			continue
		}
		if filter.Category != "" && string(p.Category) != strings.ToLower(filter.Category) {
			continue
		}
		if filter.IsAvailable != nil && p.IsAvailable != *filter.IsAvailable {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.Search != "" && !profileMatches(p, filter.Search) {
			continue
		}
		if filter.Skill != "" && !hasSkill(p, filter.Skill) {
			continue
		}
		p := p
		matched = append(matched, &p)
	}
	sort.Slice(matched, func(a, b int) bool {
		if matched[a].Rating != matched[b].Rating {
			return matched[a].Rating > matched[b].Rating
		}
		return matched[a].CreatedAt.After(matched[b].CreatedAt)
	})

	total := len(matched)
	if filter.Offset >= total {
		return []*entity.FreelancerProfile{}, total, nil
	}
	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < total {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], total, nil
}

func profileMatches(p entity.FreelancerProfile, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.DisplayName), q) || strings.Contains(strings.ToLower(p.Bio), q) {
		return true
	}
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func hasSkill(p entity.FreelancerProfile, skill string) bool {
	for _, s := range p.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

func (s profileStore) Approve(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return apperror.ErrProfileNotFound
	}
	p.Approve()
	s.profiles[id] = p
	return nil
}

type jobStore struct{ *Store }

func (s jobStore) Create(ctx context.Context, j *entity.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = cloneJob(j)
	return nil
}

func (s jobStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, apperror.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (s jobStore) List(ctx context.Context, filter repository.JobFilter) ([]*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Job
	for _, j := range s.jobs {
		if filter.ClientID != nil && j.ClientID != *filter.ClientID {
			continue
		}
		if filter.FreelancerID != nil && !j.IsAssignedTo(*filter.FreelancerID) {
			continue
		}
		if filter.Status != "" && string(j.Status) != filter.Status {
			continue
		}
		if filter.DurationType != "" && string(j.DurationType) != filter.DurationType {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (s jobStore) AppendProposal(ctx context.Context, jobID uuid.UUID, p *entity.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[jobID]
	if !ok {
		return apperror.ErrJobNotFound
	}
	if j.HasProposalFrom(p.FreelancerProfileID) {
		return apperror.ErrAlreadyApplied
	}
	if err := j.CanReceiveProposals(); err != nil {
		return err
	}
	j.Proposals = append(j.Proposals, *p)
	j.Version++
	return nil
}

func (s jobStore) Update(ctx context.Context, j *entity.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.jobs[j.ID]
	if !ok {
		return apperror.ErrJobNotFound
	}
	if stored.Version != j.Version {
		return apperror.ErrConcurrentUpdate
	}
	j.Version++
	s.jobs[j.ID] = cloneJob(j)
	return nil
}

func (s jobStore) FindByProposalAuthor(ctx context.Context, profileID uuid.UUID) ([]*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Job
	for _, j := range s.jobs {
		if j.HasProposalFrom(profileID) {
			out = append(out, cloneJob(j))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

type paymentStore struct{ *Store }

func (s paymentStore) CreateForJob(ctx context.Context, p *entity.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[p.JobID]
	if !ok {
		return apperror.ErrJobNotFound
	}
	if err := j.CanBePaid(); err != nil {
		return err
	}
	s.payments[p.ID] = *p
	id := p.ID
	j.PaymentID = &id
	j.Version++
	return nil
}

func (s paymentStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, apperror.ErrPaymentNotFound
	}
	return &p, nil
}

func (s paymentStore) FindByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.JobID == jobID {
			p := p
			return &p, nil
		}
	}
	return nil, apperror.ErrPaymentNotFound
}
