package valueobject

import (
	"strings"

	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleFreelancer, RoleAdmin:
		return true
	}
	return false
}

// NewRole разбирает роль; пустая строка означает client.
func NewRole(role string) (Role, error) {
	if strings.TrimSpace(role) == "" {
		return RoleClient, nil
	}
	r := Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.IsValid() {
		return "", apperror.Validation("invalid role", map[string]string{"role": "oneof=client freelancer admin"})
	}
	return r, nil
}

type DurationType string

const (
	DurationHourly DurationType = "hourly"
	DurationDaily  DurationType = "daily"
)

func NewDurationType(value string) (DurationType, error) {
	switch d := DurationType(value); d {
	case "":
		return DurationHourly, nil
	case DurationHourly, DurationDaily:
		return d, nil
	}
	return "", apperror.Validation("invalid duration type", map[string]string{"durationType": "oneof=hourly daily"})
}

type Category string

const (
	CategoryBodyguard Category = "bodyguard"
	CategoryAnchor    Category = "anchor"
	CategoryActor     Category = "actor"
	CategoryModel     Category = "model"
	CategoryDancer    Category = "dancer"
	CategoryOthers    Category = "others"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryBodyguard, CategoryAnchor, CategoryActor, CategoryModel, CategoryDancer, CategoryOthers:
		return true
	}
	return false
}

func NewCategory(value string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	if !c.IsValid() {
		return "", apperror.Validation("invalid category", map[string]string{"category": "oneof=bodyguard anchor actor model dancer others"})
	}
	return c, nil
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func (m MediaType) IsValid() bool {
	return m == MediaImage || m == MediaVideo
}
