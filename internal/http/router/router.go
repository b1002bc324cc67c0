package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/config"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/http/middleware"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/handler"
	"github.com/ignatzorin/freelancehub-backend/internal/metrics"
)

// Handlers собирает все обработчики API. Health может быть nil.
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Job     *handler.JobHandler
	Payment *handler.PaymentHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

func SetupRouter(cfg *config.Config, ac middleware.AccessControl, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(cfg.IsDevelopment()))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.NoRoute(middleware.NotFound())

	if h.Health != nil {
		r.GET("/health", h.Health.Health)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	requireAuth := middleware.RequireAuth(ac)
	optionalAuth := middleware.OptionalAuth(ac)
	clientOnly := middleware.RequireRoles(ac, valueobject.RoleClient)
	freelancerOnly := middleware.RequireRoles(ac, valueobject.RoleFreelancer)
	adminOnly := middleware.RequireRoles(ac, valueobject.RoleAdmin)
	idParam := middleware.UUIDParams("id")

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", requireAuth, h.Auth.Me)
		authGroup.GET("/profile", requireAuth, h.Auth.Me)
	}

	// Каталог исполнителей
	freelancers := api.Group("/freelancers")
	{
		freelancers.GET("", h.Profile.List)
		freelancers.GET("/:id", idParam, h.Profile.Get)
		freelancers.POST("", requireAuth, freelancerOnly, h.Profile.Create)
		freelancers.PUT("/:id", requireAuth, idParam, h.Profile.Update)
	}

	jobs := api.Group("/jobs")
	{
		jobs.GET("", optionalAuth, h.Job.List)
		jobs.POST("", requireAuth, clientOnly, h.Job.Create)
		jobs.GET("/mine", requireAuth, h.Job.Mine)
		jobs.GET("/applications", requireAuth, freelancerOnly, h.Job.Applications)
		jobs.GET("/:id", optionalAuth, idParam, h.Job.Get)
		jobs.POST("/:id/apply", requireAuth, freelancerOnly, idParam, h.Job.Apply)
		jobs.PATCH("/:id/proposals/:proposalId", requireAuth, clientOnly,
			middleware.UUIDParams("id", "proposalId"), h.Job.Respond)
		jobs.PATCH("/:id/status", requireAuth, idParam, h.Job.UpdateStatus)
	}

	payments := api.Group("/payments", requireAuth)
	{
		payments.POST("/:jobId", clientOnly, middleware.UUIDParams("jobId"), h.Payment.Create)
		payments.GET("/job/:jobId", middleware.UUIDParams("jobId"), h.Payment.GetForJob)
	}

	admin := api.Group("/admin", requireAuth, adminOnly)
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.PATCH("/users/:id/ban", idParam, h.Admin.Ban)
		admin.PATCH("/users/:id/unban", idParam, h.Admin.Unban)
		admin.PATCH("/freelancers/:id/approve", idParam, h.Admin.ApproveProfile)
	}

	return r
}
