package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	jobuc "github.com/ignatzorin/freelancehub-backend/internal/usecase/job"
)

type CreateJobRequest struct {
	Title        string     `json:"title" binding:"required,min=3,max=200"`
	Description  string     `json:"description" binding:"max=5000"`
	JobDate      *string    `json:"jobDate"`
	DurationType string     `json:"durationType" binding:"omitempty,oneof=hourly daily"`
	HoursOrDays  int        `json:"hoursOrDays" binding:"omitempty,min=1,max=10000"`
	Price        float64    `json:"price" binding:"omitempty,min=0"`
	Freelancer   *uuid.UUID `json:"freelancer"`
}

type ApplyRequest struct {
	Message       string   `json:"message" binding:"max=2000"`
	ProposedPrice *float64 `json:"proposedPrice" binding:"omitempty,min=0"`
}

type RespondRequest struct {
	Action string `json:"action" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ParseJobDate принимает RFC3339 или дату вида 2006-01-02.
func ParseJobDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.Validation("validation error", map[string]string{"jobDate": "datetime"})
}

type ProposalResponse struct {
	ID                uuid.UUID     `json:"id"`
	FreelancerProfile *ProfileBrief `json:"freelancerProfile,omitempty"`
	FreelancerID      uuid.UUID     `json:"freelancerProfileId"`
	Message           string        `json:"message"`
	ProposedPrice     *float64      `json:"proposedPrice"`
	Status            string        `json:"status"`
	CreatedAt         time.Time     `json:"createdAt"`
}

type JobResponse struct {
	ID           uuid.UUID            `json:"id"`
	Client       *UserSummaryResponse `json:"client,omitempty"`
	ClientID     uuid.UUID            `json:"clientId"`
	Freelancer   *ProfileResponse     `json:"freelancer,omitempty"`
	FreelancerID *uuid.UUID           `json:"freelancerId"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	JobDate      *time.Time           `json:"jobDate"`
	DurationType string               `json:"durationType"`
	HoursOrDays  int                  `json:"hoursOrDays"`
	Price        float64              `json:"price"`
	Status       string               `json:"status"`
	PaymentID    *uuid.UUID           `json:"paymentId"`
	Payment      *PaymentResponse     `json:"payment,omitempty"`
	Proposals    []ProposalResponse   `json:"proposals"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type ApplyResponse struct {
	Message  string           `json:"message"`
	Proposal ProposalResponse `json:"proposal"`
}

type JobMessageResponse struct {
	Message string      `json:"message"`
	Job     JobResponse `json:"job"`
}

type ApplicationResponse struct {
	JobID     uuid.UUID            `json:"jobId"`
	Title     string               `json:"title"`
	Client    *UserSummaryResponse `json:"client"`
	JobStatus string               `json:"jobStatus"`
	Proposal  ProposalResponse     `json:"proposal"`
}

func ToProposalResponse(p entity.Proposal, author *entity.FreelancerProfile) ProposalResponse {
	return ProposalResponse{
		ID:                p.ID,
		FreelancerProfile: toProfileBrief(author),
		FreelancerID:      p.FreelancerProfileID,
		Message:           p.Message,
		ProposedPrice:     p.ProposedPrice,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
	}
}

// ToJobResponse собирает ответ из заказа без раскрытых ссылок.
func ToJobResponse(j *entity.Job) JobResponse {
	return ToJobDetailsResponse(&jobuc.JobDetails{Job: j})
}

func ToJobDetailsResponse(d *jobuc.JobDetails) JobResponse {
	j := d.Job
	resp := JobResponse{
		ID:           j.ID,
		Client:       ToUserSummary(d.Client),
		ClientID:     j.ClientID,
		FreelancerID: j.FreelancerID,
		Title:        j.Title,
		Description:  j.Description,
		JobDate:      j.JobDate,
		DurationType: string(j.DurationType),
		HoursOrDays:  j.HoursOrDays,
		Price:        j.Price,
		Status:       string(j.Status),
		PaymentID:    j.PaymentID,
		Proposals:    make([]ProposalResponse, 0, len(j.Proposals)),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
	if d.Freelancer != nil {
		freelancer := ToProfileResponse(d.Freelancer)
		resp.Freelancer = &freelancer
	}
	if d.Payment != nil {
		payment := ToPaymentResponse(d.Payment)
		resp.Payment = &payment
	}
	for _, p := range j.Proposals {
		resp.Proposals = append(resp.Proposals, ToProposalResponse(p, d.ProposalAuthors[p.FreelancerProfileID]))
	}
	return resp
}

func ToJobDetailsResponses(details []*jobuc.JobDetails) []JobResponse {
	out := make([]JobResponse, 0, len(details))
	for _, d := range details {
		out = append(out, ToJobDetailsResponse(d))
	}
	return out
}

func ToApplicationResponses(apps []jobuc.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, ApplicationResponse{
			JobID:     a.JobID,
			Title:     a.Title,
			Client:    ToUserSummary(a.Client),
			JobStatus: string(a.JobStatus),
			Proposal:  ToProposalResponse(a.Proposal, nil),
		})
	}
	return out
}
