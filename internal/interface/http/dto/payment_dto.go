package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
)

type CreatePaymentRequest struct {
	Amount       *float64 `json:"amount" binding:"omitempty,gt=0"`
	ReceiptEmail string   `json:"receiptEmail" binding:"omitempty,email"`
}

type PaymentResponse struct {
	ID                uuid.UUID `json:"id"`
	JobID             uuid.UUID `json:"jobId"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Provider          string    `json:"provider"`
	Status            string    `json:"status"`
	ProviderPaymentID string    `json:"providerPaymentId"`
	ReceiptEmail      string    `json:"receiptEmail"`
	CreatedAt         time.Time `json:"createdAt"`
}

type PaymentCreatedResponse struct {
	Message string          `json:"message"`
	Payment PaymentResponse `json:"payment"`
}

func ToPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		JobID:             p.JobID,
		Amount:            p.Amount.Amount,
		Currency:          p.Amount.Currency,
		Provider:          string(p.Provider),
		Status:            string(p.Status),
		ProviderPaymentID: p.ProviderPaymentID,
		ReceiptEmail:      p.ReceiptEmail,
		CreatedAt:         p.CreatedAt,
	}
}
