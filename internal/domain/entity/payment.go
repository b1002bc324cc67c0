package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type Payment struct {
	ID                uuid.UUID
	JobID             uuid.UUID
	Amount            valueobject.Money
	Provider          valueobject.PaymentProvider
	Status            valueobject.PaymentStatus
	ProviderPaymentID string
	ReceiptEmail      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewMockPayment создаёт платёж, который сразу считается проведённым.
func NewMockPayment(jobID uuid.UUID, amount valueobject.Money, receiptEmail string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, apperror.Validation("amount must be positive", map[string]string{"amount": "gt=0"})
	}

	now := time.Now()
	return &Payment{
		ID:                uuid.New(),
		JobID:             jobID,
		Amount:            amount,
		Provider:          valueobject.PaymentProviderMock,
		Status:            valueobject.PaymentStatusSucceeded,
		ProviderPaymentID: fmt.Sprintf("mock_%d", now.UnixMilli()),
		ReceiptEmail:      NormalizeEmail(receiptEmail),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
