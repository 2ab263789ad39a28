package repository

import (
	"fmt"
	"time"

	"github.com/yukikurage/job-board-api/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Transaction runs fn with application and job repositories bound to one transaction
func (r *GormApplicationRepository) Transaction(fn func(apps ApplicationRepository, jobs JobRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormApplicationRepository{db: tx}, &GormJobRepository{db: tx})
	})
}

// Create creates a new application
func (r *GormApplicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return err
	}
	return nil
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.Application, error) {
	var app models.Application
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByUserAndJob finds the application of a user for a job
func (r *GormApplicationRepository) FindByUserAndJob(userID, jobID uint64) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatusIfPending moves a pending application to status
func (r *GormApplicationRepository) UpdateStatusIfPending(id uint64, status models.ApplicationStatus, note string) (bool, error) {
	result := r.db.Model(&models.Application{}).
		Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"company_note": note,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteIfPending removes a pending application
func (r *GormApplicationRepository) DeleteIfPending(id uint64) (bool, error) {
	result := r.db.Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
		Delete(&models.Application{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByUser lists a user's applications
func (r *GormApplicationRepository) ListByUser(userID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Preload("Job").
		Preload("Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByCompany lists applications received by a company
func (r *GormApplicationRepository) ListByCompany(companyID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Preload("Job").
		Preload("User").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByJob lists applications to a job
func (r *GormApplicationRepository) ListByJob(jobID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Preload("User").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// CountByStatus aggregates counts per status for the filter's scope
func (r *GormApplicationRepository) CountByStatus(filter ApplicationFilter) (map[models.ApplicationStatus]int64, error) {
	type statusCount struct {
		Status models.ApplicationStatus
		Count  int64
	}

	query := r.db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status")

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.JobID != nil {
		query = query.Where("job_id = ?", *filter.JobID)
	}

	var rows []statusCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
