package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
)

// ProfileRequest используется и при создании, и при обновлении.
// Отсутствующие поля не меняются.
type ProfileRequest struct {
	DisplayName *string        `json:"displayName" binding:"omitempty,max=100"`
	Category    *string        `json:"category" binding:"omitempty,oneof=bodyguard anchor actor model dancer others"`
	Bio         *string        `json:"bio" binding:"omitempty,max=1000"`
	Skills      []string       `json:"skills" binding:"omitempty,max=50,dive,max=50"`
	HourlyRate  *float64       `json:"hourlyRate" binding:"omitempty,min=0"`
	DailyRate   *float64       `json:"dailyRate" binding:"omitempty,min=0"`
	Location    *string        `json:"location" binding:"omitempty,max=100"`
	IsAvailable *bool          `json:"isAvailable"`
	Media       []MediaRequest `json:"media" binding:"omitempty,max=20,dive"`
}

type MediaRequest struct {
	URL      string `json:"url" binding:"required,url"`
	Type     string `json:"type" binding:"required,oneof=image video"`
	PublicID string `json:"publicId"`
}

func (r ProfileRequest) Fields() entity.ProfileFields {
	f := entity.ProfileFields{
		DisplayName: r.DisplayName,
		Category:    r.Category,
		Bio:         r.Bio,
		Skills:      r.Skills,
		HourlyRate:  r.HourlyRate,
		DailyRate:   r.DailyRate,
		Location:    r.Location,
		IsAvailable: r.IsAvailable,
	}
	if r.Media != nil {
		f.Media = make([]entity.Media, 0, len(r.Media))
		for _, m := range r.Media {
			f.Media = append(f.Media, entity.Media{URL: m.URL, Type: valueobject.MediaType(m.Type), PublicID: m.PublicID})
		}
	}
	return f
}

type MediaResponse struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	PublicID string `json:"publicId,omitempty"`
}

type ProfileResponse struct {
	ID            uuid.UUID            `json:"id"`
	User          *UserSummaryResponse `json:"user,omitempty"`
	UserID        uuid.UUID            `json:"userId"`
	DisplayName   string               `json:"displayName"`
	Category      string               `json:"category"`
	Bio           string               `json:"bio"`
	Skills        []string             `json:"skills"`
	HourlyRate    *float64             `json:"hourlyRate"`
	DailyRate     *float64             `json:"dailyRate"`
	Location      string               `json:"location"`
	IsAvailable   bool                 `json:"isAvailable"`
	Media         []MediaResponse      `json:"media"`
	Rating        float64              `json:"rating"`
	JobsCompleted int                  `json:"jobsCompleted"`
	Approved      bool                 `json:"approved"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ProfileBrief - автор отклика в карточке заказа.
type ProfileBrief struct {
	ID          uuid.UUID            `json:"id"`
	DisplayName string               `json:"displayName"`
	User        *UserSummaryResponse `json:"user,omitempty"`
}

func ToProfileResponse(p *entity.FreelancerProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:            p.ID,
		User:          ToUserSummary(p.User),
		UserID:        p.UserID,
		DisplayName:   p.DisplayName,
		Category:      string(p.Category),
		Bio:           p.Bio,
		Skills:        p.Skills,
		HourlyRate:    p.HourlyRate,
		DailyRate:     p.DailyRate,
		Location:      p.Location,
		IsAvailable:   p.IsAvailable,
		Media:         make([]MediaResponse, 0, len(p.Media)),
		Rating:        p.Rating,
		JobsCompleted: p.JobsCompleted,
		Approved:      p.Approved,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	for _, m := range p.Media {
		resp.Media = append(resp.Media, MediaResponse{URL: m.URL, Type: string(m.Type), PublicID: m.PublicID})
	}
	return resp
}

func ToProfileResponses(profiles []*entity.FreelancerProfile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToProfileResponse(p))
	}
	return out
}

func toProfileBrief(p *entity.FreelancerProfile) *ProfileBrief {
	if p == nil {
		return nil
	}
	return &ProfileBrief{ID: p.ID, DisplayName: p.DisplayName, User: ToUserSummary(p.User)}
}
