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
	"github.com/lib/pq"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/freelancehub-backend/internal/repository/common"
)

const profileColumns = `id, user_id, display_name, category, bio, skills, hourly_rate, daily_rate,
	location, is_available, media, rating, jobs_completed, approved, created_at, updated_at`

const defaultProfileLimit = 20

type ProfileRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProfileRepositoryAdapter(db *sqlx.DB) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{db: db}
}

func (r *ProfileRepositoryAdapter) Create(ctx context.Context, p *entity.FreelancerProfile) error {
	media, err := marshalMedia(p.Media)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO freelancer_profiles (id, user_id, display_name, category, bio, skills, hourly_rate,
			daily_rate, location, is_available, media, rating, jobs_completed, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13, $14, $15, $16)
	`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.DisplayName, string(p.Category), p.Bio, pq.StringArray(p.Skills), p.HourlyRate,
		p.DailyRate, p.Location, p.IsAvailable, media, p.Rating, p.JobsCompleted, p.Approved,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return apperror.ErrProfileExists
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать профиль")
	}
	return nil
}

func (r *ProfileRepositoryAdapter) Update(ctx context.Context, p *entity.FreelancerProfile) error {
	media, err := marshalMedia(p.Media)
	if err != nil {
		return err
	}

	query := `
		UPDATE freelancer_profiles SET display_name = $2, category = $3, bio = $4, skills = $5,
			hourly_rate = $6, daily_rate = $7, location = $8, is_available = $9, media = $10::jsonb,
			updated_at = $11
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.DisplayName, string(p.Category), p.Bio, pq.StringArray(p.Skills),
		p.HourlyRate, p.DailyRate, p.Location, p.IsAvailable, media, p.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить профиль")
	}
	return requireAffected(res, apperror.ErrProfileNotFound)
}

func (r *ProfileRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.FreelancerProfile, error) {
	return r.findOne(ctx, `SELECT `+profileColumns+` FROM freelancer_profiles WHERE id = $1`, id)
}

func (r *ProfileRepositoryAdapter) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FreelancerProfile, error) {
	return r.findOne(ctx, `SELECT `+profileColumns+` FROM freelancer_profiles WHERE user_id = $1`, userID)
}

func (r *ProfileRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*entity.FreelancerProfile, error) {
	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить профиль")
	}
	return row.toEntity()
}

func (r *ProfileRepositoryAdapter) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FreelancerProfile, error) {
	result := make(map[uuid.UUID]*entity.FreelancerProfile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM freelancer_profiles WHERE id = ANY($1::uuid[])`
	if err := r.db.SelectContext(ctx, &rows, query, uuidArray(ids)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить профили")
	}
	for i := range rows {
		p, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	return result, nil
}

func (r *ProfileRepositoryAdapter) List(ctx context.Context, filter repository.ProfileFilter) ([]*entity.FreelancerProfile, int, error) {
	conds := []string{"approved = TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conds = append(conds, "category = "+arg(strings.ToLower(filter.Category)))
	}
	if filter.IsAvailable != nil {
		conds = append(conds, "is_available = "+arg(*filter.IsAvailable))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf(
			"(display_name ILIKE %[1]s OR bio ILIKE %[1]s OR EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE %[1]s))", p))
	}
	if filter.Location != "" {
		conds = append(conds, "location ILIKE "+arg("%"+filter.Location+"%"))
	}
	if filter.Skill != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM unnest(skills) s WHERE lower(s) = lower("+arg(filter.Skill)+"))")
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM freelancer_profiles`+where, args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать профили")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProfileLimit
	}
	query := `SELECT ` + profileColumns + ` FROM freelancer_profiles` + where +
		` ORDER BY rating DESC, created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(filter.Offset)

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить профили")
	}

	profiles := make([]*entity.FreelancerProfile, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toEntity()
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, nil
}

func (r *ProfileRepositoryAdapter) Approve(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE freelancer_profiles SET approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось одобрить профиль")
	}
	return requireAffected(res, apperror.ErrProfileNotFound)
}

type profileRow struct {
	ID            uuid.UUID      `db:"id"`
	UserID        uuid.UUID      `db:"user_id"`
	DisplayName   string         `db:"display_name"`
	Category      string         `db:"category"`
	Bio           string         `db:"bio"`
	Skills        pq.StringArray `db:"skills"`
	HourlyRate    *float64       `db:"hourly_rate"`
	DailyRate     *float64       `db:"daily_rate"`
	Location      string         `db:"location"`
	IsAvailable   bool           `db:"is_available"`
	Media         []byte         `db:"media"`
	Rating        float64        `db:"rating"`
	JobsCompleted int            `db:"jobs_completed"`
	Approved      bool           `db:"approved"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type mediaDoc struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	PublicID string `json:"publicId,omitempty"`
}

func (p *profileRow) toEntity() (*entity.FreelancerProfile, error) {
	var docs []mediaDoc
	if len(p.Media) > 0 {
		if err := json.Unmarshal(p.Media, &docs); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "повреждены медиа профиля")
		}
	}
	media := make([]entity.Media, len(docs))
	for i, d := range docs {
		media[i] = entity.Media{URL: d.URL, Type: valueobject.MediaType(d.Type), PublicID: d.PublicID}
	}

	skills := []string(p.Skills)
	if skills == nil {
		skills = []string{}
	}

	return &entity.FreelancerProfile{
		ID:            p.ID,
		UserID:        p.UserID,
		DisplayName:   p.DisplayName,
		Category:      valueobject.Category(p.Category),
		Bio:           p.Bio,
		Skills:        skills,
		HourlyRate:    p.HourlyRate,
		DailyRate:     p.DailyRate,
		Location:      p.Location,
		IsAvailable:   p.IsAvailable,
		Media:         media,
		Rating:        p.Rating,
		JobsCompleted: p.JobsCompleted,
		Approved:      p.Approved,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func marshalMedia(media []entity.Media) (string, error) {
	docs := make([]mediaDoc, len(media))
	for i, m := range media {
		docs[i] = mediaDoc{URL: m.URL, Type: string(m.Type), PublicID: m.PublicID}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сериализовать медиа")
	}
	return string(raw), nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить число изменённых строк")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
