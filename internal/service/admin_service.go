package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
)

// identityInvalidator сбрасывает закэшированную identity пользователя.
type identityInvalidator interface {
	InvalidateIdentity(ctx context.Context, userID uuid.UUID)
}

// AdminService - операции администратора над пользователями.
type AdminService struct {
	users      repository.UserRepository
	identities identityInvalidator
}

func NewAdminService(users repository.UserRepository, identities identityInvalidator) *AdminService {
	return &AdminService{users: users, identities: identities}
}

// ListUsers возвращает пользователей, новые первыми.
func (s *AdminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.users.List(ctx)
}

// Ban блокирует пользователя. Администратора заблокировать нельзя.
func (s *AdminService) Ban(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Ban(); err != nil {
		return nil, err
	}
	return s.persistBan(ctx, user)
}

func (s *AdminService) Unban(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Unban()
	return s.persistBan(ctx, user)
}

func (s *AdminService) persistBan(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := s.users.SetBanned(ctx, user.ID, user.IsBanned); err != nil {
		return nil, err
	}
	s.identities.InvalidateIdentity(ctx, user.ID)

	logger.WithComponent("admin").
		WithField("user_id", user.ID).
		WithField("banned", user.IsBanned).
		Info("user ban flag changed")
	return user, nil
}
