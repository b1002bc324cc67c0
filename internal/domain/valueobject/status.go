package valueobject

import "github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusAccepted  JobStatus = "accepted"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:   {JobStatusAccepted, JobStatusCancelled},
	JobStatusAccepted:  {JobStatusCompleted, JobStatusCancelled},
	JobStatusCompleted: {},
	JobStatusCancelled: {},
}

func (s JobStatus) IsValid() bool {
	_, ok := jobTransitions[s]
	return ok
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

func (s JobStatus) CanTransitionTo(newStatus JobStatus) bool {
	for _, status := range jobTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewJobStatus(status string) (JobStatus, error) {
	s := JobStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("invalid job status", map[string]string{"status": "oneof=pending accepted completed cancelled"})
	}
	return s, nil
}

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

// ProposalAction - решение клиента по отклику.
type ProposalAction string

const (
	ProposalActionAccept ProposalAction = "accept"
	ProposalActionReject ProposalAction = "reject"
)

func NewProposalAction(action string) (ProposalAction, error) {
	switch a := ProposalAction(action); a {
	case ProposalActionAccept, ProposalActionReject:
		return a, nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "invalid action provided")
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentProvider string

const (
	PaymentProviderMock   PaymentProvider = "mock"
	PaymentProviderStripe PaymentProvider = "stripe"
)
