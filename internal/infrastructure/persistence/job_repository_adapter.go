package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

const jobColumns = `id, client_id, freelancer_profile_id, title, description, job_date, duration_type,
	hours_or_days, price, status, payment_id, proposals, version, created_at, updated_at`

type JobRepositoryAdapter struct {
	db *sqlx.DB
}

func NewJobRepositoryAdapter(db *sqlx.DB) *JobRepositoryAdapter {
	return &JobRepositoryAdapter{db: db}
}

func (r *JobRepositoryAdapter) Create(ctx context.Context, job *entity.Job) error {
	proposals, err := marshalProposals(job.Proposals)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (id, client_id, freelancer_profile_id, title, description, job_date, duration_type,
			hours_or_days, price, status, payment_id, proposals, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13, $14, $15)
	`
	_, err = r.db.ExecContext(ctx, query,
		job.ID, job.ClientID, job.FreelancerID, job.Title, job.Description, job.JobDate,
		string(job.DurationType), job.HoursOrDays, job.Price, string(job.Status), job.PaymentID,
		proposals, job.Version, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать заказ")
	}
	return nil
}

func (r *JobRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var row jobRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заказ")
	}
	return row.toEntity()
}

func (r *JobRepositoryAdapter) List(ctx context.Context, filter repository.JobFilter) ([]*entity.Job, error) {
	conds := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ClientID != nil {
		conds = append(conds, "client_id = "+arg(*filter.ClientID))
	}
	if filter.FreelancerID != nil {
		conds = append(conds, "freelancer_profile_id = "+arg(*filter.FreelancerID))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.DurationType != "" {
		conds = append(conds, "duration_type = "+arg(filter.DurationType))
	}
	if filter.Search != "" {
		conds = append(conds, "title ILIKE "+arg("%"+filter.Search+"%"))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)
	}

	return r.selectJobs(ctx, query, args...)
}

func (r *JobRepositoryAdapter) FindByProposalAuthor(ctx context.Context, profileID uuid.UUID) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE proposals @> jsonb_build_array(jsonb_build_object('freelancer_profile_id', $1::text))
		ORDER BY created_at DESC`
	return r.selectJobs(ctx, query, profileID.String())
}

func (r *JobRepositoryAdapter) selectJobs(ctx context.Context, query string, args ...interface{}) ([]*entity.Job, error) {
	var rows []jobRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заказы")
	}

	jobs := make([]*entity.Job, 0, len(rows))
	for i := range rows {
		job, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// AppendProposal - единственная запись, через которую появляется отклик. Проверка
// на дубликат и на открытость заказа выполняется в том же UPDATE, поэтому два
// параллельных отклика одного профиля не могут оба пройти.
func (r *JobRepositoryAdapter) AppendProposal(ctx context.Context, jobID uuid.UUID, proposal *entity.Proposal) error {
	doc, err := json.Marshal(toProposalDoc(*proposal))
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сериализовать отклик")
	}

	query := `
		UPDATE jobs
		SET proposals = proposals || jsonb_build_array($2::jsonb), version = version + 1, updated_at = NOW()
		WHERE id = $1
			AND status = 'pending'
			AND freelancer_profile_id IS NULL
			AND NOT proposals @> jsonb_build_array(jsonb_build_object('freelancer_profile_id', $3::text))
	`
	res, err := r.db.ExecContext(ctx, query, jobID, string(doc), proposal.FreelancerProfileID.String())
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось добавить отклик")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось добавить отклик")
	}
	if n == 1 {
		return nil
	}

	// Ничего не обновлено: выясняем причину по текущему состоянию заказа.
	job, err := r.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.HasProposalFrom(proposal.FreelancerProfileID) {
		return apperror.ErrAlreadyApplied
	}
	if err := job.CanReceiveProposals(); err != nil {
		return err
	}
	return apperror.ErrConcurrentUpdate
}

func (r *JobRepositoryAdapter) Update(ctx context.Context, job *entity.Job) error {
	proposals, err := marshalProposals(job.Proposals)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs SET freelancer_profile_id = $3, title = $4, description = $5, job_date = $6,
			duration_type = $7, hours_or_days = $8, price = $9, status = $10, payment_id = $11,
			proposals = $12::jsonb, version = version + 1, updated_at = $13
		WHERE id = $1 AND version = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		job.ID, job.Version, job.FreelancerID, job.Title, job.Description, job.JobDate,
		string(job.DurationType), job.HoursOrDays, job.Price, string(job.Status), job.PaymentID,
		proposals, job.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заказ")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заказ")
	}
	if n == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, job.ID); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить заказ")
		}
		if !exists {
			return apperror.ErrJobNotFound
		}
		return apperror.ErrConcurrentUpdate
	}

	job.Version++
	return nil
}

type jobRow struct {
	ID           uuid.UUID  `db:"id"`
	ClientID     uuid.UUID  `db:"client_id"`
	FreelancerID *uuid.UUID `db:"freelancer_profile_id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	JobDate      *time.Time `db:"job_date"`
	DurationType string     `db:"duration_type"`
	HoursOrDays  int        `db:"hours_or_days"`
	Price        float64    `db:"price"`
	Status       string     `db:"status"`
	PaymentID    *uuid.UUID `db:"payment_id"`
	Proposals    []byte     `db:"proposals"`
	Version      int        `db:"version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// proposalDoc - формат отклика внутри jobs.proposals.
type proposalDoc struct {
	ID                  uuid.UUID `json:"id"`
	FreelancerProfileID uuid.UUID `json:"freelancer_profile_id"`
	Message             string    `json:"message"`
	ProposedPrice       *float64  `json:"proposed_price,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

func toProposalDoc(p entity.Proposal) proposalDoc {
	return proposalDoc{
		ID:                  p.ID,
		FreelancerProfileID: p.FreelancerProfileID,
		Message:             p.Message,
		ProposedPrice:       p.ProposedPrice,
		Status:              string(p.Status),
		CreatedAt:           p.CreatedAt,
	}
}

func marshalProposals(proposals []entity.Proposal) (string, error) {
	docs := make([]proposalDoc, len(proposals))
	for i, p := range proposals {
		docs[i] = toProposalDoc(p)
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сериализовать отклики")
	}
	return string(raw), nil
}

func (j *jobRow) toEntity() (*entity.Job, error) {
	var docs []proposalDoc
	if len(j.Proposals) > 0 {
		if err := json.Unmarshal(j.Proposals, &docs); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "повреждены отклики заказа")
		}
	}
	proposals := make([]entity.Proposal, len(docs))
	for i, d := range docs {
		proposals[i] = entity.Proposal{
			ID:                  d.ID,
			FreelancerProfileID: d.FreelancerProfileID,
			Message:             d.Message,
			ProposedPrice:       d.ProposedPrice,
			Status:              valueobject.ProposalStatus(d.Status),
			CreatedAt:           d.CreatedAt,
		}
	}

	return &entity.Job{
		ID:           j.ID,
		ClientID:     j.ClientID,
		FreelancerID: j.FreelancerID,
		Title:        j.Title,
		Description:  j.Description,
		JobDate:      j.JobDate,
		DurationType: valueobject.DurationType(j.DurationType),
		HoursOrDays:  j.HoursOrDays,
		Price:        j.Price,
		Status:       valueobject.JobStatus(j.Status),
		PaymentID:    j.PaymentID,
		Proposals:    proposals,
		Version:      j.Version,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}, nil
}
