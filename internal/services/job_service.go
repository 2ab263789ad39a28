package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/repository"
	"github.com/yukikurage/job-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrJobTitleRequired    = errors.New("job title is required")
	ErrInvalidContractType = errors.New("invalid contract type")
)

// JobService provides business logic for job postings.
type JobService struct {
	jobRepo     repository.JobRepository
	companyRepo repository.CompanyRepository
	log         logrus.FieldLogger
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, companyRepo repository.CompanyRepository, log logrus.FieldLogger) *JobService {
	return &JobService{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		log:         log,
	}
}

// CreateJobInput represents parameters to post a new job.
type CreateJobInput struct {
	Title              string
	Description        string
	Salary             string
	ContractType       models.ContractType
	Location           string
	RequiredSkills     []string
	RequiredExperience string
}

// UpdateJobInput holds a partial job update. Nil fields are left unchanged.
type UpdateJobInput struct {
	Title              *string
	Description        *string
	Salary             *string
	ContractType       *models.ContractType
	Location           *string
	RequiredSkills     *[]string
	RequiredExperience *string
	Active             *bool
}

// ListJobsInput holds the public search filters.
type ListJobsInput struct {
	Query        string
	Location     string
	ContractType string
	CompanyID    *uint64
	Pagination   utils.PaginationParams
}

// Create posts a new active job for the company.
func (s *JobService) Create(companyID uint64, input CreateJobInput) (*models.Job, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrJobTitleRequired
	}
	if input.ContractType != "" && !input.ContractType.Valid() {
		return nil, ErrInvalidContractType
	}

	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if !company.Active {
		return nil, ErrForbidden
	}

	job := &models.Job{
		CompanyID:          companyID,
		Title:              title,
		Description:        input.Description,
		Salary:             strings.TrimSpace(input.Salary),
		ContractType:       input.ContractType,
		Location:           strings.TrimSpace(input.Location),
		RequiredSkills:     normalizeSkills(input.RequiredSkills),
		RequiredExperience: input.RequiredExperience,
		Active:             true,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	job.Company = *company
	s.log.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"company_id": companyID,
	}).Info("Job posted")

	return job, nil
}

// Get returns a job with its company. Jobs of deactivated companies are hidden.
func (s *JobService) Get(id uint64) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(id, "Company")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if !job.Company.Active {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// Update applies a partial update to a job owned by the company.
func (s *JobService) Update(companyID, jobID uint64, input UpdateJobInput) (*models.Job, error) {
	job, err := s.ownedJob(companyID, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrJobTitleRequired
		}
		job.Title = title
	}
	if input.ContractType != nil {
		if *input.ContractType != "" && !input.ContractType.Valid() {
			return nil, ErrInvalidContractType
		}
		job.ContractType = *input.ContractType
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Salary != nil {
		job.Salary = strings.TrimSpace(*input.Salary)
	}
	if input.Location != nil {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.RequiredSkills != nil {
		job.RequiredSkills = normalizeSkills(*input.RequiredSkills)
	}
	if input.RequiredExperience != nil {
		job.RequiredExperience = *input.RequiredExperience
	}
	if input.Active != nil {
		job.Active = *input.Active
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return s.Get(job.ID)
}

// Deactivate stops a job from accepting new applications. Pending
// applications remain decidable.
func (s *JobService) Deactivate(companyID, jobID uint64) error {
	job, err := s.ownedJob(companyID, jobID)
	if err != nil {
		return err
	}
	if !job.Active {
		return nil
	}

	job.Active = false
	if err := s.jobRepo.Update(job); err != nil {
		return fmt.Errorf("failed to deactivate job: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"company_id": companyID,
	}).Info("Job deactivated")
	return nil
}

// List searches active jobs.
func (s *JobService) List(input ListJobsInput) ([]models.Job, int64, error) {
	filter := repository.JobFilter{
		Query:      input.Query,
		Location:   input.Location,
		CompanyID:  input.CompanyID,
		ActiveOnly: true,
		Pagination: input.Pagination,
	}

	if ct := strings.TrimSpace(input.ContractType); ct != "" {
		contractType := models.ContractType(ct)
		if !contractType.Valid() {
			return nil, 0, ErrInvalidContractType
		}
		filter.ContractType = &contractType
	}

	jobs, total, err := s.jobRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}

// ListForCompany lists every job of the company, inactive ones included.
func (s *JobService) ListForCompany(companyID uint64) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (s *JobService) ownedJob(companyID, jobID uint64) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID, "Company")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if job.CompanyID != companyID || !job.Company.Active {
		return nil, ErrForbidden
	}
	return job, nil
}
