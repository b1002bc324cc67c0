package profile_test

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type mockProfileRepository struct {
	profiles map[uuid.UUID]*entity.FreelancerProfile
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[uuid.UUID]*entity.FreelancerProfile)}
}

func (m *mockProfileRepository) Create(ctx context.Context, p *entity.FreelancerProfile) error {
	for _, existing := range m.profiles {
		if existing.UserID == p.UserID {
			return apperror.ErrProfileExists
		}
	}
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *mockProfileRepository) Update(ctx context.Context, p *entity.FreelancerProfile) error {
	if _, ok := m.profiles[p.ID]; !ok {
		return apperror.ErrProfileNotFound
	}
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FreelancerProfile, error) {
	if p, ok := m.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FreelancerProfile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FreelancerProfile, error) {
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
	var matched []*entity.FreelancerProfile
	for _, p := range m.profiles {
		if !p.Approved {
			continue
		}
		if filter.Category != "" && string(p.Category) != strings.ToLower(filter.Category) {
			continue
		}
		if filter.IsAvailable != nil && p.IsAvailable != *filter.IsAvailable {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		if filter.Skill != "" && !hasSkill(p, filter.Skill) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(a, b int) bool { return matched[a].DisplayName < matched[b].DisplayName })

	total := len(matched)
	if filter.Offset >= total {
		return []*entity.FreelancerProfile{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func matchesSearch(p *entity.FreelancerProfile, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.DisplayName), q) || strings.Contains(strings.ToLower(p.Bio), q) {
		return true
	}
	return hasSkill(p, q)
}

func hasSkill(p *entity.FreelancerProfile, skill string) bool {
	for _, s := range p.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

func (m *mockProfileRepository) Approve(ctx context.Context, id uuid.UUID) error {
	p, ok := m.profiles[id]
	if !ok {
		return apperror.ErrProfileNotFound
	}
	p.Approve()
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
