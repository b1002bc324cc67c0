package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// Context ключи для gin.Context.
const (
	ContextIdentityKey = "identity"
	ContextUserIDKey   = "userID"
)

var errTokenRequired = apperror.New(apperror.ErrCodeUnauthorized, "authorization token is required")

// AccessControl - контракт проверки токена и роли.
type AccessControl interface {
	Authenticate(ctx context.Context, token string) (entity.Identity, error)
	Authorize(identity entity.Identity, roles ...valueobject.Role) error
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

func setIdentity(c *gin.Context, identity entity.Identity) {
	c.Set(ContextIdentityKey, identity)
	c.Set(ContextUserIDKey, identity.ID)
}

// RequireAuth пропускает запрос только с валидным Bearer токеном.
func RequireAuth(ac AccessControl) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, errTokenRequired)
			return
		}

		identity, err := ac.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth определяет вызывающего, если токен передан. Невалидный токен
// не прерывает запрос, он обрабатывается как анонимный.
func OptionalAuth(ac AccessControl) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		identity, err := ac.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.WithComponent("auth").WithError(err).Debug("optional auth ignored")
			c.Next()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// RequireRoles ставится после RequireAuth.
func RequireRoles(ac AccessControl, roles ...valueobject.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			response.Error(c, apperror.ErrUnauthorized)
			return
		}
		if err := ac.Authorize(identity, roles...); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// IdentityFrom возвращает identity, положенную auth middleware.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return entity.Identity{}, false
	}
	identity, ok := value.(entity.Identity)
	return identity, ok
}
