package dto

import (
	"time"

	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/models"
)

// UserDTO represents a candidate in API responses
type UserDTO struct {
	ID         uint64    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone,omitempty"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience,omitempty"`
	ResumeURL  string    `json:"resume_url,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserSummaryDTO is the candidate as seen by a company reviewing an application
type UserSummaryDTO struct {
	ID         uint64   `json:"id"`
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience,omitempty"`
	ResumeURL  string   `json:"resume_url,omitempty"`
}

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Sector      string    `json:"sector"`
	Address     string    `json:"address"`
	Website     string    `json:"website"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanySummaryDTO is the minimal company embedded in job and application responses
type CompanySummaryDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Sector string `json:"sector,omitempty"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        auth.Role `json:"role"`
	AccountID   uint64    `json:"account_id"`
}

// MeResponse describes the authenticated account
type MeResponse struct {
	Role    auth.Role   `json:"role"`
	User    *UserDTO    `json:"user,omitempty"`
	Company *CompanyDTO `json:"company,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		Skills:     skills,
		Experience: user.Experience,
		ResumeURL:  user.ResumeURL,
		Active:     user.Active,
		CreatedAt:  user.CreatedAt,
	}
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserSummaryDTO{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Skills:     skills,
		Experience: user.Experience,
		ResumeURL:  user.ResumeURL,
	}
}

// ToCompanyDTO converts a Company model to CompanyDTO. The contact email is
// only included for the company itself.
func ToCompanyDTO(company models.Company, includeEmail bool) CompanyDTO {
	dto := CompanyDTO{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Sector:      company.Sector,
		Address:     company.Address,
		Website:     company.Website,
		Active:      company.Active,
		CreatedAt:   company.CreatedAt,
	}
	if includeEmail {
		dto.Email = company.Email
	}
	return dto
}

// ToCompanySummaryDTO converts a Company model to CompanySummaryDTO
func ToCompanySummaryDTO(company models.Company) CompanySummaryDTO {
	return CompanySummaryDTO{
		ID:     company.ID,
		Name:   company.Name,
		Sector: company.Sector,
	}
}
