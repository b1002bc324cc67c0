// Package app собирает зависимости HTTP API из репозиториев и конфигурации.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelancehub-backend/internal/config"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/repository"
	"github.com/ignatzorin/freelancehub-backend/internal/http/router"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/handler"
	"github.com/ignatzorin/freelancehub-backend/internal/service"
	jobuc "github.com/ignatzorin/freelancehub-backend/internal/usecase/job"
	"github.com/ignatzorin/freelancehub-backend/internal/usecase/payment"
	"github.com/ignatzorin/freelancehub-backend/internal/usecase/profile"
)

// Repositories - хранилища, на которых работает API.
type Repositories struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Jobs     repository.JobRepository
	Payments repository.PaymentRepository
}

// App - собранное приложение.
type App struct {
	Router *gin.Engine
	Auth   *service.AuthService
	Tokens *service.TokenManager
}

// New связывает сервисы, use cases и обработчики. conn используется только
// health-эндпоинтом и может быть nil. cache может быть nil.
func New(cfg *config.Config, repos Repositories, cache service.IdentityCache, conn *sqlx.DB) *App {
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	auth := service.NewAuthService(repos.Users, tokens, cache)
	admin := service.NewAdminService(repos.Users, auth)

	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(auth),
		Profile: handler.NewProfileHandler(
			profile.NewCreateProfileUseCase(repos.Profiles),
			profile.NewUpdateProfileUseCase(repos.Profiles),
			profile.NewGetProfileUseCase(repos.Profiles, repos.Users),
			profile.NewListProfilesUseCase(repos.Profiles, repos.Users),
		),
		Job: handler.NewJobHandler(
			jobuc.NewCreateJobUseCase(repos.Jobs, repos.Profiles),
			jobuc.NewApplyToJobUseCase(repos.Jobs, repos.Profiles),
			jobuc.NewRespondToProposalUseCase(repos.Jobs),
			jobuc.NewUpdateJobStatusUseCase(repos.Jobs, repos.Profiles),
			jobuc.NewGetJobUseCase(repos.Jobs, repos.Users, repos.Profiles, repos.Payments),
			jobuc.NewListJobsUseCase(repos.Jobs, repos.Users, repos.Profiles),
			jobuc.NewMyApplicationsUseCase(repos.Jobs, repos.Profiles, repos.Users),
		),
		Payment: handler.NewPaymentHandler(
			payment.NewCreatePaymentUseCase(repos.Jobs, repos.Payments, cfg.PaymentCurrency),
			payment.NewGetPaymentForJobUseCase(repos.Jobs, repos.Payments, repos.Profiles),
		),
		Admin: handler.NewAdminHandler(admin, profile.NewApproveProfileUseCase(repos.Profiles)),
	}
	if conn != nil {
		handlers.Health = handler.NewHealthHandler(conn)
	}

	return &App{
		Router: router.SetupRouter(cfg, auth, handlers),
		Auth:   auth,
		Tokens: tokens,
	}
}
