package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/repository"
	"gorm.io/gorm"
)

// ProfileService manages candidate and company profiles.
type ProfileService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	log         logrus.FieldLogger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, log logrus.FieldLogger) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		log:         log,
	}
}

// UpdateUserInput holds a partial candidate profile update. Nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Skills     *[]string
	Experience *string
	ResumeURL  *string
}

// UpdateCompanyInput holds a partial company profile update. Nil fields are left unchanged.
type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Sector      *string
	Address     *string
	Website     *string
}

// GetUser retrieves a candidate profile.
func (s *ProfileService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update to a candidate profile.
func (s *ProfileService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Skills != nil {
		user.Skills = normalizeSkills(*input.Skills)
	}
	if input.Experience != nil {
		user.Experience = *input.Experience
	}
	if input.ResumeURL != nil {
		user.ResumeURL = strings.TrimSpace(*input.ResumeURL)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeactivateUser disables a candidate account. Existing applications are kept.
func (s *ProfileService) DeactivateUser(id uint64) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if !user.Active {
		return nil
	}

	user.Active = false
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.log.WithField("user_id", id).Info("User deactivated")
	return nil
}

// GetCompany retrieves a company profile.
func (s *ProfileService) GetCompany(id uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// UpdateCompany applies a partial update to a company profile.
func (s *ProfileService) UpdateCompany(id uint64, input UpdateCompanyInput) (*models.Company, error) {
	company, err := s.GetCompany(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrCompanyNameRequired
		}
		company.Name = name
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.Sector != nil {
		company.Sector = strings.TrimSpace(*input.Sector)
	}
	if input.Address != nil {
		company.Address = strings.TrimSpace(*input.Address)
	}
	if input.Website != nil {
		company.Website = strings.TrimSpace(*input.Website)
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// DeactivateCompany disables a company account and closes its job postings.
func (s *ProfileService) DeactivateCompany(id uint64) error {
	company, err := s.GetCompany(id)
	if err != nil {
		return err
	}
	if !company.Active {
		return nil
	}

	if err := s.companyRepo.Deactivate(company.ID); err != nil {
		return fmt.Errorf("failed to deactivate company: %w", err)
	}

	s.log.WithField("company_id", id).Info("Company deactivated")
	return nil
}
