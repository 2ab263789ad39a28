package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-board-api/internal/middleware"
)

// Handlers groups every HTTP handler served by the API.
type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Job         *JobHandler
	Application *ApplicationHandler
	HealthCheck gin.HandlerFunc
	AuthLimiter gin.HandlerFunc
	Tokens      middleware.TokenVerifier
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	health := h.HealthCheck
	if health == nil {
		health = func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "Job Board API is running",
			})
		}
	}
	r.GET("/health", health)

	limit := h.AuthLimiter
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	requireAuth := middleware.RequireAuth(h.Tokens)

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/users/register", limit, h.Auth.RegisterUser)
			auth.POST("/companies/register", limit, h.Auth.RegisterCompany)
			auth.POST("/login", limit, h.Auth.Login)
			auth.POST("/logout", requireAuth, h.Auth.Logout)
			auth.GET("/me", requireAuth, h.Auth.GetCurrentAccount)
		}

		// Candidate profile (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", h.Profile.GetMyUser)
			users.PUT("/me", h.Profile.UpdateMyUser)
			users.DELETE("/me", h.Profile.DeactivateMyUser)
		}

		// Company profiles
		companies := api.Group("/companies")
		{
			companies.GET("/me", requireAuth, h.Profile.GetMyCompany)
			companies.PUT("/me", requireAuth, h.Profile.UpdateMyCompany)
			companies.DELETE("/me", requireAuth, h.Profile.DeactivateMyCompany)
			companies.GET("/me/jobs", requireAuth, h.Profile.ListMyJobs)
			companies.GET("/:id", h.Profile.GetCompany)
		}

		// Job routes
		jobs := api.Group("/jobs")
		{
			jobs.GET("", h.Job.ListJobs)
			jobs.GET("/:id", h.Job.GetJob)
			jobs.POST("", requireAuth, h.Job.CreateJob)
			jobs.PUT("/:id", requireAuth, h.Job.UpdateJob)
			jobs.DELETE("/:id", requireAuth, h.Job.DeactivateJob)
			jobs.GET("/:id/applications", requireAuth, h.Application.ListForJob)
		}

		// Application routes (protected)
		applications := api.Group("/applications")
		applications.Use(requireAuth)
		{
			applications.POST("", h.Application.Apply)
			applications.POST("/cover-letter", h.Application.DraftCoverLetter)
			applications.GET("/statistics", h.Application.Statistics)
			applications.GET("/user/:id", h.Application.ListForUser)
			applications.GET("/company/:id", h.Application.ListForCompany)
			applications.GET("/:id", h.Application.GetApplication)
			applications.PUT("/:id/status", h.Application.Decide)
			applications.DELETE("/:id", h.Application.Withdraw)
		}
	}
}
