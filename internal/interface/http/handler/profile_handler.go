package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/http/middleware"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/dto"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	createUC *profile.CreateProfileUseCase
	updateUC *profile.UpdateProfileUseCase
	getUC    *profile.GetProfileUseCase
	listUC   *profile.ListProfilesUseCase
}

func NewProfileHandler(
	createUC *profile.CreateProfileUseCase,
	updateUC *profile.UpdateProfileUseCase,
	getUC *profile.GetProfileUseCase,
	listUC *profile.ListProfilesUseCase,
) *ProfileHandler {
	return &ProfileHandler{
		createUC: createUC,
		updateUC: updateUC,
		getUC:    getUC,
		listUC:   listUC,
	}
}

func (h *ProfileHandler) List(c *gin.Context) {
	page, err := h.listUC.Execute(c.Request.Context(), repository.ProfileFilter{
		Category:    c.Query("category"),
		IsAvailable: parseBoolQuery(c, "isAvailable"),
		Search:      firstNonEmpty(c.Query("search"), c.Query("q")),
		Location:    c.Query("location"),
		Skill:       c.Query("skill"),
		Limit:       parseIntQuery(c, "limit", profile.DefaultPageSize),
		Offset:      parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToProfileResponses(page.Profiles), page.Total, page.Limit, page.Offset)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(p))
}

func (h *ProfileHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.createUC.Execute(c.Request.Context(), profile.CreateProfileInput{
		Caller: identity,
		Fields: req.Fields(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProfileResponse(p))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.updateUC.Execute(c.Request.Context(), profile.UpdateProfileInput{
		ProfileID: id,
		Caller:    identity,
		Fields:    req.Fields(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(p))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
