package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// mockUserRepository реализует repository.UserRepository для тестов.
type mockUserRepository struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	findCalls int
	banChecks int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.ErrEmailTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == entity.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.UserSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]entity.UserSummary)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockUserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return apperror.ErrUserNotFound
	}
	u.IsBanned = banned
	return nil
}

func (m *mockUserRepository) IsBanned(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banChecks++
	u, ok := m.users[id]
	if !ok {
		return false, apperror.ErrUserNotFound
	}
	return u.IsBanned, nil
}

type mockIdentityCache struct {
	mock.Mock
}

func (m *mockIdentityCache) Get(ctx context.Context, userID uuid.UUID) (entity.Identity, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entity.Identity), args.Bool(1), args.Error(2)
}

func (m *mockIdentityCache) Set(ctx context.Context, identity entity.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *mockIdentityCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// mapIdentityCache - простой кэш identity на map.
type mapIdentityCache struct {
	mu    sync.Mutex
	items map[uuid.UUID]entity.Identity
}

func newMapIdentityCache() *mapIdentityCache {
	return &mapIdentityCache{items: make(map[uuid.UUID]entity.Identity)}
}

func (c *mapIdentityCache) Get(ctx context.Context, userID uuid.UUID) (entity.Identity, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	identity, ok := c.items[userID]
	return identity, ok, nil
}

func (c *mapIdentityCache) Set(ctx context.Context, identity entity.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[identity.ID] = identity
	return nil
}

func (c *mapIdentityCache) Delete(ctx context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	return nil
}

// afterFindUserRepository вызывает hook после чтения пользователя, но до возврата результата.
type afterFindUserRepository struct {
	*mockUserRepository
	hook func()
}

func (r *afterFindUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := r.mockUserRepository.FindByID(ctx, id)
	if r.hook != nil {
		hook := r.hook
		r.hook = nil
		hook()
	}
	return user, err
}
