package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/freelancehub-backend/internal/validation"
)

// Job - агрегат заказа. Отклики хранятся внутри заказа и меняются только
// через методы агрегата.
type Job struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	FreelancerID *uuid.UUID // профиль назначенного исполнителя
	Title        string
	Description  string
	JobDate      *time.Time
	DurationType valueobject.DurationType
	HoursOrDays  int
	Price        float64
	Status       valueobject.JobStatus
	PaymentID    *uuid.UUID
	Proposals    []Proposal
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Proposal struct {
	ID                  uuid.UUID
	FreelancerProfileID uuid.UUID
	Message             string
	ProposedPrice       *float64
	Status              valueobject.ProposalStatus
	CreatedAt           time.Time
}

type NewJobParams struct {
	Title        string
	Description  string
	JobDate      *time.Time
	DurationType string
	HoursOrDays  int
	Price        float64
	FreelancerID *uuid.UUID
}

func NewJob(clientID uuid.UUID, p NewJobParams) (*Job, error) {
	details := map[string]string{}

	title := strings.TrimSpace(p.Title)
	if err := validation.ValidateJobTitle(title); err != nil {
		details["title"] = err.Error()
	}
	description := strings.TrimSpace(p.Description)
	if err := validation.ValidateLength("description", description, 0, validation.MaxDescriptionLength); err != nil {
		details["description"] = err.Error()
	}
	durationType, err := valueobject.NewDurationType(p.DurationType)
	if err != nil {
		details["durationType"] = "oneof=hourly daily"
	}
	hoursOrDays := p.HoursOrDays
	if hoursOrDays == 0 {
		hoursOrDays = 1
	}
	if hoursOrDays < 1 || hoursOrDays > validation.MaxHoursOrDays {
		details["hoursOrDays"] = "min=1"
	}
	if err := validation.ValidatePrice("price", p.Price); err != nil {
		details["price"] = err.Error()
	}
	if len(details) > 0 {
		return nil, apperror.Validation("validation error", details)
	}

	now := time.Now()
	return &Job{
		ID:           uuid.New(),
		ClientID:     clientID,
		FreelancerID: p.FreelancerID,
		Title:        title,
		Description:  description,
		JobDate:      p.JobDate,
		DurationType: durationType,
		HoursOrDays:  hoursOrDays,
		Price:        p.Price,
		Status:       valueobject.JobStatusPending,
		Proposals:    []Proposal{},
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func NewProposal(profileID uuid.UUID, message string, proposedPrice *float64) (*Proposal, error) {
	message = strings.TrimSpace(message)
	if err := validation.ValidateLength("message", message, 0, validation.MaxMessageLength); err != nil {
		return nil, apperror.Validation("validation error", map[string]string{"message": err.Error()})
	}
	if proposedPrice != nil {
		if err := validation.ValidatePrice("proposedPrice", *proposedPrice); err != nil {
			return nil, apperror.Validation("validation error", map[string]string{"proposedPrice": err.Error()})
		}
	}

	return &Proposal{
		ID:                  uuid.New(),
		FreelancerProfileID: profileID,
		Message:             message,
		ProposedPrice:       proposedPrice,
		Status:              valueobject.ProposalStatusPending,
		CreatedAt:           time.Now(),
	}, nil
}

func (j *Job) IsOwnedBy(userID uuid.UUID) bool {
	return j.ClientID == userID
}

func (j *Job) IsAssignedTo(profileID uuid.UUID) bool {
	return j.FreelancerID != nil && *j.FreelancerID == profileID
}

// PaymentVisibleTo: платёж видят администратор, клиент заказа и назначенный исполнитель.
// callerProfileID - профиль исполнителя вызывающего, nil если профиля нет.
func (j *Job) PaymentVisibleTo(caller Identity, callerProfileID *uuid.UUID) bool {
	switch caller.Role {
	case valueobject.RoleAdmin:
		return true
	case valueobject.RoleClient:
		return j.IsOwnedBy(caller.ID)
	case valueobject.RoleFreelancer:
		return callerProfileID != nil && j.IsAssignedTo(*callerProfileID)
	}
	return false
}

func (j *Job) FindProposal(proposalID uuid.UUID) (*Proposal, bool) {
	for i := range j.Proposals {
		if j.Proposals[i].ID == proposalID {
			return &j.Proposals[i], true
		}
	}
	return nil, false
}

func (j *Job) ProposalFrom(profileID uuid.UUID) (*Proposal, bool) {
	for i := range j.Proposals {
		if j.Proposals[i].FreelancerProfileID == profileID {
			return &j.Proposals[i], true
		}
	}
	return nil, false
}

func (j *Job) HasProposalFrom(profileID uuid.UUID) bool {
	_, ok := j.ProposalFrom(profileID)
	return ok
}

// CanReceiveProposals - откликаться можно только на открытый заказ без исполнителя.
func (j *Job) CanReceiveProposals() error {
	if j.Status != valueobject.JobStatusPending || j.FreelancerID != nil {
		return apperror.New(apperror.ErrCodeConflict, "job is not accepting applications")
	}
	return nil
}

// AcceptProposal назначает автора отклика исполнителем и отклоняет остальные отклики.
func (j *Job) AcceptProposal(proposalID uuid.UUID) error {
	target, ok := j.FindProposal(proposalID)
	if !ok {
		return apperror.ErrProposalNotFound
	}
	if j.Status != valueobject.JobStatusPending || j.FreelancerID != nil {
		return apperror.New(apperror.ErrCodeConflict, "job already has an accepted proposal")
	}
	if target.Status != valueobject.ProposalStatusPending {
		return apperror.New(apperror.ErrCodeConflict, "proposal has already been answered")
	}

	for i := range j.Proposals {
		if j.Proposals[i].ID == proposalID {
			j.Proposals[i].Status = valueobject.ProposalStatusAccepted
		} else {
			j.Proposals[i].Status = valueobject.ProposalStatusRejected
		}
	}
	profileID := target.FreelancerProfileID
	j.FreelancerID = &profileID
	j.Status = valueobject.JobStatusAccepted
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) RejectProposal(proposalID uuid.UUID) error {
	target, ok := j.FindProposal(proposalID)
	if !ok {
		return apperror.ErrProposalNotFound
	}
	if target.Status != valueobject.ProposalStatusPending {
		return apperror.New(apperror.ErrCodeConflict, "proposal has already been answered")
	}
	target.Status = valueobject.ProposalStatusRejected
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) RespondToProposal(proposalID uuid.UUID, action valueobject.ProposalAction) error {
	switch action {
	case valueobject.ProposalActionAccept:
		return j.AcceptProposal(proposalID)
	case valueobject.ProposalActionReject:
		return j.RejectProposal(proposalID)
	}
	return apperror.Validation("invalid action provided", map[string]string{"action": "oneof=accept reject"})
}

// ChangeStatus переводит заказ по таблице переходов. Перевод в accepted
// возможен только при уже назначенном исполнителе.
func (j *Job) ChangeStatus(next valueobject.JobStatus) error {
	if !next.IsValid() {
		return apperror.Validation("invalid status", map[string]string{"status": "oneof=pending accepted completed cancelled"})
	}
	if !j.Status.CanTransitionTo(next) {
		return apperror.New(apperror.ErrCodeConflict, "cannot change job status from "+string(j.Status)+" to "+string(next))
	}
	if next == valueobject.JobStatusAccepted && j.FreelancerID == nil {
		return apperror.New(apperror.ErrCodeConflict, "job has no assigned freelancer")
	}
	j.Status = next
	j.UpdatedAt = time.Now()
	return nil
}

// CanBePaid проверяет, что по заказу ещё можно провести оплату.
func (j *Job) CanBePaid() error {
	if j.Status == valueobject.JobStatusCancelled {
		return apperror.ErrJobCancelled
	}
	if j.PaymentID != nil {
		return apperror.ErrPaymentExists
	}
	return nil
}
