package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/dto"
	apierrors "github.com/yukikurage/job-board-api/internal/errors"
	"github.com/yukikurage/job-board-api/internal/middleware"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/services"
	"github.com/yukikurage/job-board-api/internal/utils"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// ListJobs returns active jobs matching the optional filters
// q, location, contract_type and company_id
func (h *JobHandler) ListJobs(c *gin.Context) {
	input := services.ListJobsInput{
		Query:        c.Query("q"),
		Location:     c.Query("location"),
		ContractType: c.Query("contract_type"),
		Pagination:   utils.GetPaginationParams(c),
	}

	if companyIDStr := c.Query("company_id"); companyIDStr != "" {
		companyID, err := strconv.ParseUint(companyIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid company_id")
			return
		}
		input.CompanyID = &companyID
	}

	jobs, total, err := h.jobService.List(input)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(jobs, input.Pagination, total))
}

// GetJob returns a specific job by ID
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.Get(jobID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// CreateJob posts a new job for the authenticated company
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	type CreateJobRequest struct {
		Title              string              `json:"title" binding:"required,max=255"`
		Description        string              `json:"description"`
		Salary             string              `json:"salary" binding:"max=100"`
		ContractType       models.ContractType `json:"contract_type"`
		Location           string              `json:"location" binding:"max=255"`
		RequiredSkills     []string            `json:"required_skills"`
		RequiredExperience string              `json:"required_experience"`
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	job, err := h.jobService.Create(actor.ID, services.CreateJobInput{
		Title:              req.Title,
		Description:        req.Description,
		Salary:             req.Salary,
		ContractType:       req.ContractType,
		Location:           req.Location,
		RequiredSkills:     req.RequiredSkills,
		RequiredExperience: req.RequiredExperience,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// UpdateJob partially updates a job owned by the authenticated company
func (h *JobHandler) UpdateJob(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateJobRequest struct {
		Title              *string              `json:"title" binding:"omitempty,max=255"`
		Description        *string              `json:"description"`
		Salary             *string              `json:"salary" binding:"omitempty,max=100"`
		ContractType       *models.ContractType `json:"contract_type"`
		Location           *string              `json:"location" binding:"omitempty,max=255"`
		RequiredSkills     *[]string            `json:"required_skills"`
		RequiredExperience *string              `json:"required_experience"`
		Active             *bool                `json:"active"`
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	job, err := h.jobService.Update(actor.ID, jobID, services.UpdateJobInput{
		Title:              req.Title,
		Description:        req.Description,
		Salary:             req.Salary,
		ContractType:       req.ContractType,
		Location:           req.Location,
		RequiredSkills:     req.RequiredSkills,
		RequiredExperience: req.RequiredExperience,
		Active:             req.Active,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// DeactivateJob stops a job from accepting applications
func (h *JobHandler) DeactivateJob(c *gin.Context) {
	actor, ok := middleware.RequireRole(c, auth.RoleCompany)
	if !ok {
		return
	}

	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.Deactivate(actor.ID, jobID); err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job deactivated",
	})
}

func respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJobTitleRequired),
		errors.Is(err, services.ErrInvalidContractType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
