package dto

import (
	"time"

	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/utils"
)

// JobDTO represents a job posting in API responses
type JobDTO struct {
	ID                 uint64              `json:"id"`
	CompanyID          uint64              `json:"company_id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Salary             string              `json:"salary"`
	ContractType       models.ContractType `json:"contract_type"`
	Location           string              `json:"location"`
	RequiredSkills     []string            `json:"required_skills"`
	RequiredExperience string              `json:"required_experience"`
	Active             bool                `json:"active"`
	ApplicationCount   int64               `json:"application_count"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Company            *CompanySummaryDTO  `json:"company,omitempty"`
}

// JobListItemDTO represents a job in list responses (minimal data)
type JobListItemDTO struct {
	ID               uint64              `json:"id"`
	Title            string              `json:"title"`
	ContractType     models.ContractType `json:"contract_type"`
	Location         string              `json:"location"`
	Salary           string              `json:"salary"`
	Active           bool                `json:"active"`
	ApplicationCount int64               `json:"application_count"`
	CreatedAt        time.Time           `json:"created_at"`
	Company          *CompanySummaryDTO  `json:"company,omitempty"`
}

// JobListResponse represents a paginated list of jobs
type JobListResponse struct {
	Jobs       []JobListItemDTO `json:"jobs"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int64            `json:"total_count"`
	TotalPages int              `json:"total_pages"`
}

// ToJobDTO converts a Job model to JobDTO
func ToJobDTO(job models.Job) JobDTO {
	skills := job.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	dto := JobDTO{
		ID:                 job.ID,
		CompanyID:          job.CompanyID,
		Title:              job.Title,
		Description:        job.Description,
		Salary:             job.Salary,
		ContractType:       job.ContractType,
		Location:           job.Location,
		RequiredSkills:     skills,
		RequiredExperience: job.RequiredExperience,
		Active:             job.Active,
		ApplicationCount:   job.ApplicationCount,
		CreatedAt:          job.CreatedAt,
		UpdatedAt:          job.UpdatedAt,
	}

	// Include company if preloaded
	if job.Company.ID != 0 {
		company := ToCompanySummaryDTO(job.Company)
		dto.Company = &company
	}

	return dto
}

// ToJobListItemDTO converts a Job model to JobListItemDTO
func ToJobListItemDTO(job models.Job) JobListItemDTO {
	dto := JobListItemDTO{
		ID:               job.ID,
		Title:            job.Title,
		ContractType:     job.ContractType,
		Location:         job.Location,
		Salary:           job.Salary,
		Active:           job.Active,
		ApplicationCount: job.ApplicationCount,
		CreatedAt:        job.CreatedAt,
	}

	if job.Company.ID != 0 {
		company := ToCompanySummaryDTO(job.Company)
		dto.Company = &company
	}

	return dto
}

// ToJobListItems converts a slice of jobs to list items
func ToJobListItems(jobs []models.Job) []JobListItemDTO {
	items := make([]JobListItemDTO, len(jobs))
	for i, job := range jobs {
		items[i] = ToJobListItemDTO(job)
	}
	return items
}

// ToJobListResponse converts a page of jobs to JobListResponse
func ToJobListResponse(jobs []models.Job, params utils.PaginationParams, totalCount int64) JobListResponse {
	return JobListResponse{
		Jobs:       ToJobListItems(jobs),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: totalCount,
		TotalPages: params.TotalPages(totalCount),
	}
}
