package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/dto"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToAuthResponse(result))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAuthResponse(result))
}

// Me отдаёт текущего пользователя. Доступен как /auth/me и /auth/profile.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	user, err := h.auth.Me(c.Request.Context(), identity.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.MeResponse{User: dto.ToUserResponse(user)})
}
