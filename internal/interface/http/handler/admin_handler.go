package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/http/middleware"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/dto"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/service"
	"github.com/ignatzorin/freelancehub-backend/internal/usecase/profile"
)

// AdminHandler - маршруты /admin. Роль проверяется в роутере.
type AdminHandler struct {
	admin     *service.AdminService
	approveUC *profile.ApproveProfileUseCase
}

func NewAdminHandler(admin *service.AdminService, approveUC *profile.ApproveProfileUseCase) *AdminHandler {
	return &AdminHandler{admin: admin, approveUC: approveUC}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponses(users))
}

func (h *AdminHandler) Ban(c *gin.Context) {
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.admin.Ban(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.UserMessageResponse{Message: "User banned successfully", User: dto.ToUserResponse(user)})
}

func (h *AdminHandler) Unban(c *gin.Context) {
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.admin.Unban(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.UserMessageResponse{Message: "User unbanned successfully", User: dto.ToUserResponse(user)})
}

func (h *AdminHandler) ApproveProfile(c *gin.Context) {
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.approveUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ProfileMessageResponse{Message: "Profile approved successfully", Profile: dto.ToProfileResponse(p)})
}
