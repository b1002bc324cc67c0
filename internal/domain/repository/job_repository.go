package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*entity.Job, error)

	// AppendProposal добавляет отклик одной атомарной операцией при условии,
	// что от этого профиля ещё нет отклика. Возвращает ErrAlreadyApplied или ErrJobNotFound.
	AppendProposal(ctx context.Context, jobID uuid.UUID, proposal *entity.Proposal) error

	// Update сохраняет заказ, если его версия не изменилась с момента чтения,
	// и увеличивает job.Version. Иначе ErrConcurrentUpdate.
	Update(ctx context.Context, job *entity.Job) error

	FindByProposalAuthor(ctx context.Context, profileID uuid.UUID) ([]*entity.Job, error)
}

type JobFilter struct {
	ClientID     *uuid.UUID
	FreelancerID *uuid.UUID
	Status       string
	DurationType string
	Search       string
	Limit        int
	Offset       int
}
