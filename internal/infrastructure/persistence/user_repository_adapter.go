package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/freelancehub-backend/internal/repository/common"
)

const userColumns = `id, name, email, password_hash, role, is_banned, created_at, updated_at`

type UserRepositoryAdapter struct {
	db *sqlx.DB
}

func NewUserRepositoryAdapter(db *sqlx.DB) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{db: db}
}

func (r *UserRepositoryAdapter) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, is_banned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.IsBanned, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return apperror.ErrEmailTaken
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать пользователя")
	}
	return nil
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, entity.NormalizeEmail(email))
}

func (r *UserRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователя")
	}
	return row.toEntity(), nil
}

func (r *UserRepositoryAdapter) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.UserSummary, error) {
	result := make(map[uuid.UUID]entity.UserSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []struct {
		ID    uuid.UUID `db:"id"`
		Name  string    `db:"name"`
		Email string    `db:"email"`
	}
	query := `SELECT id, name, email FROM users WHERE id = ANY($1::uuid[])`
	if err := r.db.SelectContext(ctx, &rows, query, uuidArray(ids)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователей")
	}
	for _, row := range rows {
		result[row.ID] = entity.UserSummary{ID: row.ID, Name: row.Name, Email: row.Email}
	}
	return result, nil
}

func (r *UserRepositoryAdapter) List(ctx context.Context) ([]*entity.User, error) {
	var rows []userRow
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователей")
	}

	users := make([]*entity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toEntity()
	}
	return users, nil
}

func (r *UserRepositoryAdapter) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_banned = $2, updated_at = NOW() WHERE id = $1`, id, banned)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить пользователя")
	}
	return requireAffected(res, apperror.ErrUserNotFound)
}

func (r *UserRepositoryAdapter) IsBanned(ctx context.Context, id uuid.UUID) (bool, error) {
	var banned bool
	if err := r.db.GetContext(ctx, &banned, `SELECT is_banned FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, apperror.ErrUserNotFound
		}
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователя")
	}
	return banned, nil
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsBanned     bool      `db:"is_banned"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *userRow) toEntity() *entity.User {
	return &entity.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         valueobject.Role(u.Role),
		IsBanned:     u.IsBanned,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// uuidArray передаёт список идентификаторов как text[] для последующего приведения к uuid[].
func uuidArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
