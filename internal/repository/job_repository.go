package repository

import (
	"strings"

	"github.com/yukikurage/job-board-api/internal/database"
	"github.com/yukikurage/job-board-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job
func (r *GormJobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// FindByID finds a job by ID with optional preloading
func (r *GormJobRepository) FindByID(id uint64, preload ...string) (*models.Job, error) {
	var job models.Job
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&job, id).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

// Update saves a job. The application counter is owned by
// IncrementApplicationCount and is never written from a loaded struct.
func (r *GormJobRepository) Update(job *models.Job) error {
	return r.db.Omit(clause.Associations, "application_count").Save(job).Error
}

// List retrieves jobs with filtering and pagination
func (r *GormJobRepository) List(filter JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job

	query := r.db.Model(&models.Job{})

	if filter.ActiveOnly {
		query = query.Scopes(database.ActiveJobs)
	}
	if filter.CompanyID != nil {
		query = query.Where("jobs.company_id = ?", *filter.CompanyID)
	}
	if filter.ContractType != nil {
		query = query.Where("jobs.contract_type = ?", *filter.ContractType)
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		query = query.Where("LOWER(jobs.location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("jobs.created_at DESC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	if err := listQuery.Preload("Company").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// ListByCompany lists all jobs posted by a company
func (r *GormJobRepository) ListByCompany(companyID uint64) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// IncrementApplicationCount adjusts the denormalized application counter
// with a single UPDATE so concurrent writers cannot lose increments.
func (r *GormJobRepository) IncrementApplicationCount(jobID uint64, delta int64) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", jobID).
		UpdateColumn("application_count", gorm.Expr("application_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
