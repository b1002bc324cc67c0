package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/freelancehub-backend/internal/validation"
)

// IdentityCache - кэш разрешённых identity. Ошибки кэша не должны ломать запрос.
type IdentityCache interface {
	Get(ctx context.Context, userID uuid.UUID) (entity.Identity, bool, error)
	Set(ctx context.Context, identity entity.Identity) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// AuthService инкапсулирует регистрацию, вход и проверку токенов.
type AuthService struct {
	users        repository.UserRepository
	tokenManager *TokenManager
	cache        IdentityCache
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или входа.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService создаёт сервис аутентификации. cache может быть nil.
func NewAuthService(users repository.UserRepository, tokenManager *TokenManager, cache IdentityCache) *AuthService {
	return &AuthService{
		users:        users,
		tokenManager: tokenManager,
		cache:        cache,
	}
}

// Register создаёт нового пользователя. Роль admin через API не выдаётся.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	details := map[string]string{}
	if err := validation.ValidateNonEmpty("name", in.Name); err != nil {
		details["name"] = err.Error()
	} else if err := validation.ValidateLength("name", strings.TrimSpace(in.Name), 0, validation.MaxNameLength); err != nil {
		details["name"] = err.Error()
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		details["email"] = err.Error()
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		details["password"] = err.Error()
	}
	role, err := valueobject.NewRole(in.Role)
	if err != nil || role == valueobject.RoleAdmin {
		details["role"] = "oneof=client freelancer"
	}
	if len(details) > 0 {
		return nil, apperror.Validation("validation error", details)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperror.ErrEmailTaken
	} else if !errors.Is(err, apperror.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}

	user, err := entity.NewUser(in.Name, in.Email, string(hash), role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.WithComponent("auth").WithField("user_id", user.ID).Info("user registered")
	return s.issue(user)
}

// Login проверяет учётные данные. Заблокированный пользователь получает 403.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperror.Validation("email and password are required", map[string]string{
			"email":    "required",
			"password": "required",
		})
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, apperror.ErrBanned
	}

	return s.issue(user)
}

// Me возвращает текущего пользователя.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Authenticate проверяет токен и возвращает identity. Отсутствующий или
// заблокированный пользователь отклоняется независимо от валидности токена.
// Из кэша берутся только имя, email и роль; блокировка всегда читается из хранилища.
func (s *AuthService) Authenticate(ctx context.Context, token string) (entity.Identity, error) {
	userID, _, err := s.tokenManager.Parse(token)
	if err != nil {
		return entity.Identity{}, apperror.Wrap(err, apperror.ErrCodeUnauthorized, apperror.ErrInvalidToken.Message)
	}

	identity, found := s.cachedIdentity(ctx, userID)
	if found {
		// флаг блокировки в кэше может устареть, его источник - хранилище
		banned, err := s.users.IsBanned(ctx, userID)
		if err != nil {
			if errors.Is(err, apperror.ErrUserNotFound) {
				s.InvalidateIdentity(ctx, userID)
				return entity.Identity{}, apperror.ErrInvalidUser
			}
			return entity.Identity{}, err
		}
		identity.Banned = banned
	} else {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperror.ErrUserNotFound) {
				return entity.Identity{}, apperror.ErrInvalidUser
			}
			return entity.Identity{}, err
		}
		identity = user.Identity()
		s.storeIdentity(ctx, identity)
	}

	if identity.Banned {
		return entity.Identity{}, apperror.ErrInvalidUser
	}
	return identity, nil
}

// Authorize проверяет, что роль identity входит в разрешённый набор.
func (s *AuthService) Authorize(identity entity.Identity, roles ...valueobject.Role) error {
	if len(roles) == 0 || identity.HasRole(roles...) {
		return nil
	}
	return apperror.New(apperror.ErrCodeForbidden,
		"user role "+string(identity.Role)+" is not authorized to access this route")
}

// InvalidateIdentity удаляет identity из кэша после изменения пользователя.
func (s *AuthService) InvalidateIdentity(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, userID); err != nil {
		logger.WithComponent("auth").WithError(err).WithField("user_id", userID).Warn("identity cache delete failed")
	}
}

func (s *AuthService) issue(user *entity.User) (*AuthResult, error) {
	token, exp, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) cachedIdentity(ctx context.Context, userID uuid.UUID) (entity.Identity, bool) {
	if s.cache == nil {
		return entity.Identity{}, false
	}
	identity, found, err := s.cache.Get(ctx, userID)
	if err != nil {
		logger.WithComponent("auth").WithError(err).Warn("identity cache read failed")
		return entity.Identity{}, false
	}
	return identity, found
}

func (s *AuthService) storeIdentity(ctx context.Context, identity entity.Identity) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, identity); err != nil {
		logger.WithComponent("auth").WithError(err).Warn("identity cache write failed")
	}
}
