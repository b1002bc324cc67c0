package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         valueobject.Role
	IsBanned     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity - минимальная проекция пользователя, которая прикрепляется к запросу.
type Identity struct {
	ID     uuid.UUID        `json:"id"`
	Role   valueobject.Role `json:"role"`
	Email  string           `json:"email"`
	Name   string           `json:"name"`
	Banned bool             `json:"banned"`
}

// UserSummary используется при раскрытии ссылок (client, user профиля).
type UserSummary struct {
	ID    uuid.UUID
	Name  string
	Email string
}

func NewUser(name, email, passwordHash string, role valueobject.Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name is required", map[string]string{"name": "required"})
	}
	if !role.IsValid() {
		return nil, apperror.Validation("invalid role", map[string]string{"role": "oneof=client freelancer admin"})
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Ban() error {
	if u.Role == valueobject.RoleAdmin {
		return apperror.New(apperror.ErrCodeForbidden, "cannot ban admin users")
	}
	u.IsBanned = true
	u.UpdatedAt = time.Now()
	return nil
}

func (u *User) Unban() {
	u.IsBanned = false
	u.UpdatedAt = time.Now()
}

func (u *User) Identity() Identity {
	return Identity{
		ID:     u.ID,
		Role:   u.Role,
		Email:  u.Email,
		Name:   u.Name,
		Banned: u.IsBanned,
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// HasRole проверяет, входит ли роль в разрешённый набор.
func (i Identity) HasRole(roles ...valueobject.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
