package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/dto"
	apierrors "github.com/yukikurage/job-board-api/internal/errors"
	"github.com/yukikurage/job-board-api/internal/middleware"
	"github.com/yukikurage/job-board-api/internal/services"
)

// ProfileHandler serves candidate and company profiles.
type ProfileHandler struct {
	profileService *services.ProfileService
	jobService     *services.JobService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, jobService *services.JobService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		jobService:     jobService,
	}
}

// GetMyUser returns the authenticated candidate's profile
func (h *ProfileHandler) GetMyUser(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleUser)
	if !ok {
		return
	}

	user, err := h.profileService.GetUser(actor.ID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateMyUser partially updates the authenticated candidate's profile
func (h *ProfileHandler) UpdateMyUser(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleUser)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		FirstName  *string   `json:"first_name" binding:"omitempty,max=100"`
		LastName   *string   `json:"last_name" binding:"omitempty,max=100"`
		Phone      *string   `json:"phone" binding:"omitempty,max=30"`
		Skills     *[]string `json:"skills"`
		Experience *string   `json:"experience"`
		ResumeURL  *string   `json:"resume_url" binding:"omitempty,url"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	user, err := h.profileService.UpdateUser(actor.ID, services.UpdateUserInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Experience: req.Experience,
		ResumeURL:  req.ResumeURL,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeactivateMyUser disables the authenticated candidate's account
func (h *ProfileHandler) DeactivateMyUser(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleUser)
	if !ok {
		return
	}

	if err := h.profileService.DeactivateUser(actor.ID); err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deactivated",
	})
}

// GetMyCompany returns the authenticated company's profile
func (h *ProfileHandler) GetMyCompany(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	company, err := h.profileService.GetCompany(actor.ID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company, true))
}

// UpdateMyCompany partially updates the authenticated company's profile
func (h *ProfileHandler) UpdateMyCompany(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	type UpdateCompanyRequest struct {
		Name        *string `json:"name" binding:"omitempty,max=255"`
		Description *string `json:"description"`
		Sector      *string `json:"sector" binding:"omitempty,max=100"`
		Address     *string `json:"address" binding:"omitempty,max=255"`
		Website     *string `json:"website" binding:"omitempty,url"`
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	company, err := h.profileService.UpdateCompany(actor.ID, services.UpdateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Sector:      req.Sector,
		Address:     req.Address,
		Website:     req.Website,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company, true))
}

// DeactivateMyCompany disables the authenticated company's account
func (h *ProfileHandler) DeactivateMyCompany(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	if err := h.profileService.DeactivateCompany(actor.ID); err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deactivated",
	})
}

// GetCompany returns a company's public profile
func (h *ProfileHandler) GetCompany(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	company, err := h.profileService.GetCompany(companyID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	if !company.Active {
		apierrors.NotFound(c, services.ErrCompanyNotFound.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company, false))
}

// ListMyJobs lists every job of the authenticated company, inactive ones included
func (h *ProfileHandler) ListMyJobs(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListForCompany(actor.ID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  dto.ToJobListItems(jobs),
		"total": len(jobs),
	})
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCompanyNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
