package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=client freelancer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsBanned  bool      `json:"isBanned"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserSummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

func ToUserSummary(u *entity.UserSummary) *UserSummaryResponse {
	if u == nil {
		return nil
	}
	return &UserSummaryResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToAuthResponse(r *service.AuthResult) AuthResponse {
	return AuthResponse{
		User:      ToUserResponse(r.User),
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
	}
}
