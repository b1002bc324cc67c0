package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/metrics"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type CreatePaymentInput struct {
	JobID        uuid.UUID
	Caller       entity.Identity
	Amount       *float64 // nil - оплачивается цена заказа
	ReceiptEmail string
}

type CreatePaymentUseCase struct {
	jobRepo     repository.JobRepository
	paymentRepo repository.PaymentRepository
	currency    string
}

func NewCreatePaymentUseCase(jobRepo repository.JobRepository, paymentRepo repository.PaymentRepository, currency string) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		jobRepo:     jobRepo,
		paymentRepo: paymentRepo,
		currency:    currency,
	}
}

// Execute проводит тестовый платёж. Провайдер всегда mock, статус succeeded.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*entity.Payment, error) {
	job, err := uc.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if input.Caller.Role != valueobject.RoleClient || !job.IsOwnedBy(input.Caller.ID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "you are not authorized to pay for this job")
	}
	if err := job.CanBePaid(); err != nil {
		return nil, err
	}

	amountValue := job.Price
	if input.Amount != nil {
		amountValue = *input.Amount
	}
	amount, err := valueobject.NewMoney(amountValue, uc.currency)
	if err != nil {
		return nil, err
	}

	receiptEmail := input.ReceiptEmail
	if receiptEmail == "" {
		receiptEmail = input.Caller.Email
	}
	payment, err := entity.NewMockPayment(job.ID, amount, receiptEmail)
	if err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.CreateForJob(ctx, payment); err != nil {
		return nil, err
	}

	metrics.RecordPayment(string(payment.Provider), string(payment.Status))
	logger.WithComponent("payments").
		WithField("job_id", job.ID).
		WithField("payment_id", payment.ID).
		WithField("amount", payment.Amount.String()).
		Info("mock payment succeeded")
	return payment, nil
}

type GetPaymentForJobUseCase struct {
	jobRepo     repository.JobRepository
	paymentRepo repository.PaymentRepository
	profileRepo repository.ProfileRepository
}

func NewGetPaymentForJobUseCase(
	jobRepo repository.JobRepository,
	paymentRepo repository.PaymentRepository,
	profileRepo repository.ProfileRepository,
) *GetPaymentForJobUseCase {
	return &GetPaymentForJobUseCase{
		jobRepo:     jobRepo,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
	}
}

// Execute возвращает платёж по заказу клиенту, назначенному исполнителю или администратору.
func (uc *GetPaymentForJobUseCase) Execute(ctx context.Context, jobID uuid.UUID, caller entity.Identity) (*entity.Payment, error) {
	job, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	allowed, err := uc.canView(ctx, job, caller)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(apperror.ErrCodeForbidden, "you are not authorized to view this payment")
	}

	return uc.paymentRepo.FindByJobID(ctx, job.ID)
}

func (uc *GetPaymentForJobUseCase) canView(ctx context.Context, job *entity.Job, caller entity.Identity) (bool, error) {
	var profileID *uuid.UUID
	if caller.Role == valueobject.RoleFreelancer && job.FreelancerID != nil {
		profile, err := uc.profileRepo.FindByUserID(ctx, caller.ID)
		if err != nil && !apperror.IsNotFound(err) {
			return false, err
		}
		if profile != nil {
			profileID = &profile.ID
		}
	}
	return job.PaymentVisibleTo(caller, profileID), nil
}
