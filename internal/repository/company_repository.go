package repository

import (
	"fmt"

	"github.com/yukikurage/job-board-api/internal/models"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(company *models.Company) error {
	if err := r.db.Create(company).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return err
	}
	return nil
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByEmail finds a company by email
func (r *GormCompanyRepository) FindByEmail(email string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("email = ?", email).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a company
func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

// Deactivate closes the company account together with its job postings
func (r *GormCompanyRepository) Deactivate(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Company{}).
			Where("id = ?", id).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).
			Where("company_id = ? AND active = ?", id, true).
			Update("active", false).Error
	})
}
