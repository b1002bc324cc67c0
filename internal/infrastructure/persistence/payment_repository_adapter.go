package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/freelancehub-backend/internal/repository/common"
)

const paymentColumns = `id, job_id, amount, currency, provider, status, provider_payment_id,
	receipt_email, created_at, updated_at`

type PaymentRepositoryAdapter struct {
	db *sqlx.DB
}

func NewPaymentRepositoryAdapter(db *sqlx.DB) *PaymentRepositoryAdapter {
	return &PaymentRepositoryAdapter{db: db}
}

func (r *PaymentRepositoryAdapter) CreateForJob(ctx context.Context, p *entity.Payment) error {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO payments (id, job_id, amount, currency, provider, status, provider_payment_id,
				receipt_email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		if _, err := tx.ExecContext(ctx, insert,
			p.ID, p.JobID, p.Amount.Amount, p.Amount.Currency, string(p.Provider), string(p.Status),
			p.ProviderPaymentID, p.ReceiptEmail, p.CreatedAt, p.UpdatedAt,
		); err != nil {
			if common.IsUniqueViolation(err) {
				return apperror.ErrPaymentExists
			}
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать платёж")
		}

		link := `
			UPDATE jobs SET payment_id = $2, version = version + 1, updated_at = $3
			WHERE id = $1 AND payment_id IS NULL AND status <> 'cancelled'
		`
		res, err := tx.ExecContext(ctx, link, p.JobID, p.ID, p.CreatedAt)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось привязать платёж к заказу")
		}
		if n, err := res.RowsAffected(); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить число изменённых строк")
		} else if n == 0 {
			return linkConflict(ctx, tx, p.JobID)
		}
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось провести платёж")
	}
	return nil
}

// linkConflict объясняет, почему платёж не удалось привязать к заказу.
func linkConflict(ctx context.Context, tx *sqlx.Tx, jobID uuid.UUID) error {
	var status string
	if err := tx.GetContext(ctx, &status, `SELECT status FROM jobs WHERE id = $1`, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.ErrJobNotFound
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заказ")
	}
	if status == string(valueobject.JobStatusCancelled) {
		return apperror.ErrJobCancelled
	}
	return apperror.ErrPaymentExists
}

func (r *PaymentRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *PaymentRepositoryAdapter) FindByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE job_id = $1`, jobID)
}

func (r *PaymentRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*entity.Payment, error) {
	var row paymentRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrPaymentNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить платёж")
	}
	return row.toEntity(), nil
}

type paymentRow struct {
	ID                uuid.UUID `db:"id"`
	JobID             uuid.UUID `db:"job_id"`
	Amount            float64   `db:"amount"`
	Currency          string    `db:"currency"`
	Provider          string    `db:"provider"`
	Status            string    `db:"status"`
	ProviderPaymentID string    `db:"provider_payment_id"`
	ReceiptEmail      string    `db:"receipt_email"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (p *paymentRow) toEntity() *entity.Payment {
	return &entity.Payment{
		ID:                p.ID,
		JobID:             p.JobID,
		Amount:            valueobject.Money{Amount: p.Amount, Currency: p.Currency},
		Provider:          valueobject.PaymentProvider(p.Provider),
		Status:            valueobject.PaymentStatus(p.Status),
		ProviderPaymentID: p.ProviderPaymentID,
		ReceiptEmail:      p.ReceiptEmail,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
