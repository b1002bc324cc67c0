package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// SeedPassword - пароль всех демо пользователей.
const SeedPassword = "password123"

type seedUser struct {
	name  string
	email string
	role  valueobject.Role
}

type seedProfile struct {
	email         string
	displayName   string
	category      string
	bio           string
	skills        []string
	hourlyRate    float64
	dailyRate     float64
	location      string
	rating        float64
	jobsCompleted int
}

var seedUsers = []seedUser{
	{"Admin User", "admin@example.com", valueobject.RoleAdmin},
	{"John Client", "client@example.com", valueobject.RoleClient},
	{"Sarah Bodyguard", "bodyguard@example.com", valueobject.RoleFreelancer},
	{"Mike Anchor", "anchor@example.com", valueobject.RoleFreelancer},
	{"Emma Model", "model@example.com", valueobject.RoleFreelancer},
	{"Alex Dancer", "dancer@example.com", valueobject.RoleFreelancer},
	{"Lisa Actor", "actor@example.com", valueobject.RoleFreelancer},
}

var seedProfiles = []seedProfile{
	{
		email: "bodyguard@example.com", displayName: "Sarah - Professional Bodyguard", category: "bodyguard",
		bio:    "Certified security professional with 10 years of experience in personal protection for events.",
		skills: []string{"Close Protection", "Risk Assessment", "Crowd Control", "First Aid"},
		hourlyRate: 75, dailyRate: 500, location: "New York, NY", rating: 4.8, jobsCompleted: 45,
	},
	{
		email: "anchor@example.com", displayName: "Mike - Professional Event Anchor", category: "anchor",
		bio:    "Event host for corporate events, weddings and live shows.",
		skills: []string{"Public Speaking", "Event Management", "Improvisation", "Multilingual"},
		hourlyRate: 100, dailyRate: 800, location: "Los Angeles, CA", rating: 4.9, jobsCompleted: 78,
	},
	{
		email: "model@example.com", displayName: "Emma - Fashion & Commercial Model", category: "model",
		bio:    "Runway, print and commercial campaigns.",
		skills: []string{"Runway Modeling", "Photo Shoots", "Commercial Work", "Fitness Modeling"},
		hourlyRate: 150, dailyRate: 1200, location: "Miami, FL", rating: 4.7, jobsCompleted: 92,
	},
	{
		email: "dancer@example.com", displayName: "Alex - Contemporary Dancer & Choreographer", category: "dancer",
		bio:    "Contemporary, hip-hop and ballroom. Performances and teaching.",
		skills: []string{"Contemporary Dance", "Hip-Hop", "Choreography", "Performance"},
		hourlyRate: 80, dailyRate: 600, location: "Chicago, IL", rating: 4.9, jobsCompleted: 65,
	},
	{
		email: "actor@example.com", displayName: "Lisa - Theater & Film Actor", category: "actor",
		bio:    "Theater and film actor available for commercials, films and stage productions.",
		skills: []string{"Method Acting", "Voice Acting", "Stage Performance", "Improvisation"},
		hourlyRate: 120, dailyRate: 900, location: "Atlanta, GA", rating: 4.6, jobsCompleted: 54,
	},
}

// SeedResult - сколько записей создано за прогон.
type SeedResult struct {
	UsersCreated    int
	UsersSkipped    int
	ProfilesCreated int
}

// SeedService заполняет базу демо данными. Повторный запуск ничего не дублирует.
type SeedService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewSeedService(users repository.UserRepository, profiles repository.ProfileRepository) *SeedService {
	return &SeedService{users: users, profiles: profiles}
}

func (s *SeedService) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	log := logger.WithComponent("seed")

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return result, fmt.Errorf("seed service: hash password: %w", err)
	}

	byEmail := make(map[string]*entity.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := s.users.FindByEmail(ctx, su.email)
		switch {
		case err == nil:
			byEmail[su.email] = existing
			result.UsersSkipped++
			continue
		case !errors.Is(err, apperror.ErrUserNotFound):
			return result, fmt.Errorf("seed service: find %s: %w", su.email, err)
		}

		user, err := entity.NewUser(su.name, su.email, string(hash), su.role)
		if err != nil {
			return result, err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return result, fmt.Errorf("seed service: create %s: %w", su.email, err)
		}
		byEmail[su.email] = user
		result.UsersCreated++
		log.WithField("email", su.email).WithField("role", su.role).Info("user seeded")
	}

	for _, sp := range seedProfiles {
		user, ok := byEmail[sp.email]
		if !ok {
			continue
		}
		if _, err := s.profiles.FindByUserID(ctx, user.ID); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return result, err
		}

		profile, err := entity.NewFreelancerProfile(user.ID, sp.fields())
		if err != nil {
			return result, fmt.Errorf("seed service: profile %s: %w", sp.email, err)
		}
		profile.Rating = sp.rating
		profile.JobsCompleted = sp.jobsCompleted
		if err := s.profiles.Create(ctx, profile); err != nil {
			return result, fmt.Errorf("seed service: create profile %s: %w", sp.email, err)
		}
		result.ProfilesCreated++
	}

	return result, nil
}

func (sp seedProfile) fields() entity.ProfileFields {
	available := true
	return entity.ProfileFields{
		DisplayName: &sp.displayName,
		Category:    &sp.category,
		Bio:         &sp.bio,
		Skills:      sp.skills,
		HourlyRate:  &sp.hourlyRate,
		DailyRate:   &sp.dailyRate,
		Location:    &sp.location,
		IsAvailable: &available,
	}
}
