package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/freelancehub-backend/internal/validation"
)

type FreelancerProfile struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	DisplayName   string
	Category      valueobject.Category
	Bio           string
	Skills        []string
	HourlyRate    *float64
	DailyRate     *float64
	Location      string
	IsAvailable   bool
	Media         []Media
	Rating        float64
	JobsCompleted int
	Approved      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// User заполняется только на пути чтения.
	User *UserSummary
}

type Media struct {
	URL      string
	Type     valueobject.MediaType
	PublicID string
}

// ProfileFields описывает изменяемые поля профиля; nil означает "не менять".
type ProfileFields struct {
	DisplayName *string
	Category    *string
	Bio         *string
	Skills      []string
	HourlyRate  *float64
	DailyRate   *float64
	Location    *string
	IsAvailable *bool
	Media       []Media
}

func NewFreelancerProfile(userID uuid.UUID, fields ProfileFields) (*FreelancerProfile, error) {
	if fields.Category == nil {
		return nil, apperror.Validation("category is required", map[string]string{"category": "required"})
	}

	now := time.Now()
	p := &FreelancerProfile{
		ID:          uuid.New(),
		UserID:      userID,
		Skills:      []string{},
		Media:       []Media{},
		IsAvailable: true,
		Approved:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Apply(fields); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply валидирует и применяет изменения. Рейтинг, счётчик заказов и
// одобрение меняются только отдельными операциями.
func (p *FreelancerProfile) Apply(f ProfileFields) error {
	details := map[string]string{}

	if f.DisplayName != nil {
		name := strings.TrimSpace(*f.DisplayName)
		if err := validation.ValidateLength("displayName", name, 0, validation.MaxDisplayNameLength); err != nil {
			details["displayName"] = err.Error()
		}
		p.DisplayName = name
	}
	if f.Category != nil {
		c, err := valueobject.NewCategory(*f.Category)
		if err != nil {
			details["category"] = "oneof=bodyguard anchor actor model dancer others"
		}
		p.Category = c
	}
	if f.Bio != nil {
		if err := validation.ValidateLength("bio", *f.Bio, 0, validation.MaxBioLength); err != nil {
			details["bio"] = err.Error()
		}
		p.Bio = strings.TrimSpace(*f.Bio)
	}
	if f.Skills != nil {
		skills, err := validation.NormalizeSkills(f.Skills)
		if err != nil {
			details["skills"] = err.Error()
		}
		p.Skills = skills
	}
	if f.HourlyRate != nil {
		if *f.HourlyRate < 0 {
			details["hourlyRate"] = "min=0"
		}
		p.HourlyRate = f.HourlyRate
	}
	if f.DailyRate != nil {
		if *f.DailyRate < 0 {
			details["dailyRate"] = "min=0"
		}
		p.DailyRate = f.DailyRate
	}
	if f.Location != nil {
		if err := validation.ValidateLength("location", *f.Location, 0, validation.MaxLocationLength); err != nil {
			details["location"] = err.Error()
		}
		p.Location = strings.TrimSpace(*f.Location)
	}
	if f.IsAvailable != nil {
		p.IsAvailable = *f.IsAvailable
	}
	if f.Media != nil {
		for _, m := range f.Media {
			if !m.Type.IsValid() || strings.TrimSpace(m.URL) == "" {
				details["media"] = "each item needs url and type image|video"
				break
			}
		}
		p.Media = f.Media
	}

	if len(details) > 0 {
		return apperror.Validation("validation error", details)
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (p *FreelancerProfile) Approve() {
	p.Approved = true
	p.UpdatedAt = time.Now()
}

func (p *FreelancerProfile) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}
