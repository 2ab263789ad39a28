package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/constants"
	"github.com/yukikurage/job-board-api/internal/dto"
	apierrors "github.com/yukikurage/job-board-api/internal/errors"
	"github.com/yukikurage/job-board-api/internal/middleware"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/services"
)

// ApplicationHandler exposes the application lifecycle over HTTP.
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Apply submits the authenticated candidate's application to a job
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleUser)
	if !ok {
		return
	}

	type ApplyRequest struct {
		JobID       uint64 `json:"job_id" binding:"required"`
		CoverLetter string `json:"cover_letter"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	app, err := h.applicationService.Apply(services.ApplyInput{
		UserID:      actor.ID,
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// Decide records the owning company's decision on an application
func (h *ApplicationHandler) Decide(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type DecideRequest struct {
		Status      models.ApplicationStatus `json:"status" binding:"required"`
		CompanyNote string                   `json:"company_note"`
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	app, err := h.applicationService.Decide(services.DecideInput{
		CompanyID:     actor.ID,
		ApplicationID: applicationID,
		Outcome:       req.Status,
		Note:          req.CompanyNote,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// Withdraw deletes the authenticated candidate's pending application
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleUser)
	if !ok {
		return
	}

	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.applicationService.Withdraw(actor.ID, applicationID); err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Application withdrawn",
	})
}

// GetApplication returns one application to its candidate or company
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	app, err := h.applicationService.Get(actor, applicationID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// ListForUser lists a candidate's applications; candidates only see their own
func (h *ApplicationHandler) ListForUser(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleUser)
	if !ok {
		return
	}

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if userID != actor.ID {
		apierrors.Forbidden(c, "You can only list your own applications")
		return
	}

	apps, err := h.applicationService.ListForUser(actor.ID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationListResponse(apps))
}

// ListForCompany lists the applications a company received
func (h *ApplicationHandler) ListForCompany(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if companyID != actor.ID {
		apierrors.Forbidden(c, "You can only list your own applications")
		return
	}

	apps, err := h.applicationService.ListForCompany(actor.ID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationListResponse(apps))
}

// ListForJob lists the applications to one of the company's jobs
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	apps, err := h.applicationService.ListForJob(actor.ID, jobID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationListResponse(apps))
}

// Statistics returns the caller's application counts by status
func (h *ApplicationHandler) Statistics(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.applicationService.Statistics(actor)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatisticsDTO(*stats))
}

// DraftCoverLetter generates a cover letter suggestion using AI
func (h *ApplicationHandler) DraftCoverLetter(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleUser)
	if !ok {
		return
	}

	type DraftRequest struct {
		JobID uint64 `json:"job_id" binding:"required"`
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.AIRequestTimeout)
	defer cancel()

	letter, err := h.applicationService.DraftCoverLetter(ctx, actor.ID, req.JobID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CoverLetterDTO{
		JobID:       req.JobID,
		CoverLetter: letter,
	})
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidOutcome),
		errors.Is(err, services.ErrCoverLetterTooLong),
		errors.Is(err, services.ErrCompanyNoteTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrJobInactive):
		apierrors.UnprocessableEntity(c, apierrors.ErrCodeJobInactive, err.Error())
	case errors.Is(err, services.ErrDuplicateApplication):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeDuplicateApplication, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
