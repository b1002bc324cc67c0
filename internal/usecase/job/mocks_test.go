package job_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// mockJobRepository повторяет семантику хранилища: копии при чтении,
// атомарное добавление отклика и проверку версии при записи.
type mockJobRepository struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.Job
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{jobs: make(map[uuid.UUID]*entity.Job)}
}

func cloneJob(j *entity.Job) *entity.Job {
	cp := *j
	cp.Proposals = append([]entity.Proposal(nil), j.Proposals...)
	return &cp
}

func (m *mockJobRepository) Create(ctx context.Context, j *entity.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = cloneJob(j)
	return nil
}

func (m *mockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		return cloneJob(j), nil
	}
	return nil, apperror.ErrJobNotFound
}

func (m *mockJobRepository) List(ctx context.Context, filter repository.JobFilter) ([]*entity.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Job
	for _, j := range m.jobs {
		if filter.ClientID != nil && j.ClientID != *filter.ClientID {
			continue
		}
		if filter.FreelancerID != nil && (j.FreelancerID == nil || *j.FreelancerID != *filter.FreelancerID) {
			continue
		}
		if filter.Status != "" && string(j.Status) != filter.Status {
			continue
		}
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (m *mockJobRepository) AppendProposal(ctx context.Context, jobID uuid.UUID, p *entity.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
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

func (m *mockJobRepository) Update(ctx context.Context, j *entity.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.jobs[j.ID]
	if !ok {
		return apperror.ErrJobNotFound
	}
	if stored.Version != j.Version {
		return apperror.ErrConcurrentUpdate
	}
	j.Version++
	m.jobs[j.ID] = cloneJob(j)
	return nil
}

func (m *mockJobRepository) FindByProposalAuthor(ctx context.Context, profileID uuid.UUID) ([]*entity.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Job
	for _, j := range m.jobs {
		if j.HasProposalFrom(profileID) {
			out = append(out, cloneJob(j))
		}
	}
	return out, nil
}

// attachPayment имитирует привязку платежа к заказу.
func (m *mockJobRepository) attachPayment(jobID, paymentID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[jobID].PaymentID = &paymentID
	m.jobs[jobID].Version++
}

type mockProfileRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.FreelancerProfile
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[uuid.UUID]*entity.FreelancerProfile)}
}

func (m *mockProfileRepository) Create(ctx context.Context, p *entity.FreelancerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.profiles {
		if existing.UserID == p.UserID {
			return apperror.ErrProfileExists
		}
	}
	m.profiles[p.ID] = p
	return nil
}

func (m *mockProfileRepository) Update(ctx context.Context, p *entity.FreelancerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FreelancerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FreelancerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FreelancerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]*entity.FreelancerProfile)
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *mockProfileRepository) List(ctx context.Context, filter repository.ProfileFilter) ([]*entity.FreelancerProfile, int, error) {
	return nil, 0, nil
}

func (m *mockProfileRepository) Approve(ctx context.Context, id uuid.UUID) error {
	return nil
}

type mockUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.UserSummary, error) {
	out := make(map[uuid.UUID]entity.UserSummary)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return nil, nil
}

func (m *mockUserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	return nil
}

func (m *mockUserRepository) IsBanned(ctx context.Context, id uuid.UUID) (bool, error) {
	if u, ok := m.users[id]; ok {
		return u.IsBanned, nil
	}
	return false, apperror.ErrUserNotFound
}

type mockPaymentRepository struct {
	payments map[uuid.UUID]*entity.Payment
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (m *mockPaymentRepository) CreateForJob(ctx context.Context, p *entity.Payment) error {
	m.payments[p.ID] = p
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, apperror.ErrPaymentNotFound
}

func (m *mockPaymentRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Payment, error) {
	for _, p := range m.payments {
		if p.JobID == jobID {
			return p, nil
		}
	}
	return nil, apperror.ErrPaymentNotFound
}

// fixture собирает пользователей и профили для сценариев.
type fixture struct {
	jobs     *mockJobRepository
	profiles *mockProfileRepository
	users    *mockUserRepository
	payments *mockPaymentRepository
}

func newFixture() *fixture {
	return &fixture{
		jobs:     newMockJobRepository(),
		profiles: newMockProfileRepository(),
		users:    newMockUserRepository(),
		payments: newMockPaymentRepository(),
	}
}

func (f *fixture) addUser(name string, role valueobject.Role) *entity.User {
	u, err := entity.NewUser(name, name+"@example.com", "hash", role)
	if err != nil {
		panic(err)
	}
	f.users.users[u.ID] = u
	return u
}

func (f *fixture) addFreelancer(name string) (*entity.User, *entity.FreelancerProfile) {
	u := f.addUser(name, valueobject.RoleFreelancer)
	category := "dancer"
	p, err := entity.NewFreelancerProfile(u.ID, entity.ProfileFields{DisplayName: &name, Category: &category})
	if err != nil {
		panic(err)
	}
	f.profiles.profiles[p.ID] = p
	return u, p
}
