package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/http/middleware"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/dto"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	jobuc "github.com/ignatzorin/freelancehub-backend/internal/usecase/job"
)

const defaultJobPageSize = 50

var errClientsOnly = apperror.New(apperror.ErrCodeForbidden, "This route is for clients only")

// JobHandler обрабатывает HTTP запросы для заказов и откликов.
type JobHandler struct {
	createUC       *jobuc.CreateJobUseCase
	applyUC        *jobuc.ApplyToJobUseCase
	respondUC      *jobuc.RespondToProposalUseCase
	updateStatusUC *jobuc.UpdateJobStatusUseCase
	getUC          *jobuc.GetJobUseCase
	listUC         *jobuc.ListJobsUseCase
	applicationsUC *jobuc.MyApplicationsUseCase
}

func NewJobHandler(
	createUC *jobuc.CreateJobUseCase,
	applyUC *jobuc.ApplyToJobUseCase,
	respondUC *jobuc.RespondToProposalUseCase,
	updateStatusUC *jobuc.UpdateJobStatusUseCase,
	getUC *jobuc.GetJobUseCase,
	listUC *jobuc.ListJobsUseCase,
	applicationsUC *jobuc.MyApplicationsUseCase,
) *JobHandler {
	return &JobHandler{
		createUC:       createUC,
		applyUC:        applyUC,
		respondUC:      respondUC,
		updateStatusUC: updateStatusUC,
		getUC:          getUC,
		listUC:         listUC,
		applicationsUC: applicationsUC,
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	jobDate, err := dto.ParseJobDate(req.JobDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	job, err := h.createUC.Execute(c.Request.Context(), jobuc.CreateJobInput{
		ClientID:            identity.ID,
		Title:               req.Title,
		Description:         req.Description,
		JobDate:             jobDate,
		DurationType:        req.DurationType,
		HoursOrDays:         req.HoursOrDays,
		Price:               req.Price,
		FreelancerProfileID: req.Freelancer,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToJobResponse(job))
}

// List доступен без авторизации. С токеном выборка сужается до заказов вызывающего.
func (h *JobHandler) List(c *gin.Context) {
	input := jobuc.ListJobsInput{
		Status:       c.Query("status"),
		DurationType: c.Query("durationType"),
		Search:       firstNonEmpty(c.Query("q"), c.Query("search")),
		Limit:        parseIntQuery(c, "limit", defaultJobPageSize),
		Offset:       parseIntQuery(c, "offset", 0),
	}
	if identity, ok := middleware.IdentityFrom(c); ok {
		input.Caller = &identity
	}

	jobs, err := h.listUC.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobDetailsResponses(jobs))
}

// Mine возвращает заказы текущего клиента.
func (h *JobHandler) Mine(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	if identity.Role != valueobject.RoleClient {
		response.Error(c, errClientsOnly)
		return
	}

	jobs, err := h.listUC.Execute(c.Request.Context(), jobuc.ListJobsInput{
		Caller: &identity,
		Status: c.Query("status"),
		Limit:  parseIntQuery(c, "limit", defaultJobPageSize),
		Offset: parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobDetailsResponses(jobs))
}

func (h *JobHandler) Applications(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	apps, err := h.applicationsUC.Execute(c.Request.Context(), identity.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToApplicationResponses(apps))
}

// Get открыт без токена. Платёж в ответе получают только участники заказа и администратор.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var caller *entity.Identity
	if identity, ok := middleware.IdentityFrom(c); ok {
		caller = &identity
	}

	details, err := h.getUC.Execute(c.Request.Context(), id, caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobDetailsResponse(details))
}

func (h *JobHandler) Apply(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	proposal, err := h.applyUC.Execute(c.Request.Context(), jobuc.ApplyToJobInput{
		JobID:         id,
		UserID:        identity.ID,
		Message:       req.Message,
		ProposedPrice: req.ProposedPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ApplyResponse{
		Message:  "Application submitted successfully",
		Proposal: dto.ToProposalResponse(*proposal, nil),
	})
}

func (h *JobHandler) Respond(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	proposalID, err := middleware.ParamUUID(c, "proposalId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	job, err := h.respondUC.Execute(c.Request.Context(), jobuc.RespondToProposalInput{
		JobID:      jobID,
		ClientID:   identity.ID,
		ProposalID: proposalID,
		Action:     req.Action,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.JobMessageResponse{
		Message: proposalMessage(job, proposalID),
		Job:     dto.ToJobResponse(job),
	})
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, err := middleware.ParamUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	job, err := h.updateStatusUC.Execute(c.Request.Context(), jobuc.UpdateJobStatusInput{
		JobID:      id,
		CallerID:   identity.ID,
		CallerRole: identity.Role,
		Status:     req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.JobMessageResponse{
		Message: "Job status updated successfully",
		Job:     dto.ToJobResponse(job),
	})
}

func proposalMessage(job *entity.Job, proposalID uuid.UUID) string {
	if p, ok := job.FindProposal(proposalID); ok {
		return "Proposal " + string(p.Status)
	}
	return "Proposal updated"
}
