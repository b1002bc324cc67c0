package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
)

type PaymentRepository interface {
	// CreateForJob в одной транзакции сохраняет платёж и привязывает его к заказу.
	// Если у заказа уже есть платёж, возвращает ErrPaymentExists.
	CreateForJob(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Payment, error)
}
