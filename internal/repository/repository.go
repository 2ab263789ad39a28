package repository

import (
	"errors"
	"strings"

	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)

// UserRepository defines the interface for candidate account data access
type UserRepository interface {
	// Create creates a new user; a taken email yields ErrDuplicateKey
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update saves all fields of a user
	Update(user *models.User) error
}

// CompanyRepository defines the interface for employer account data access
type CompanyRepository interface {
	// Create creates a new company; a taken email yields ErrDuplicateKey
	Create(company *models.Company) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// FindByEmail finds a company by email
	FindByEmail(email string) (*models.Company, error)

	// Update saves all fields of a company
	Update(company *models.Company) error

	// Deactivate marks the company and all of its jobs inactive in one transaction
	Deactivate(id uint64) error
}

// JobRepository defines the interface for job posting data access
type JobRepository interface {
	// Create creates a new job
	Create(job *models.Job) error

	// FindByID finds a job by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Job, error)

	// Update saves a job, leaving its application count untouched
	Update(job *models.Job) error

	// List retrieves jobs with filtering and pagination
	List(filter JobFilter) ([]models.Job, int64, error)

	// ListByCompany lists every job of a company, active or not
	ListByCompany(companyID uint64) ([]models.Job, error)

	// IncrementApplicationCount atomically adds delta to the job's application count
	IncrementApplicationCount(jobID uint64, delta int64) error
}

// JobFilter holds filtering options for listing jobs
type JobFilter struct {
	Query        string
	Location     string
	ContractType *models.ContractType
	CompanyID    *uint64
	ActiveOnly   bool
	Pagination   utils.PaginationParams
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Transaction runs fn inside a single database transaction. The
	// repositories passed to fn share that transaction; returning an error
	// from fn rolls everything back.
	Transaction(fn func(apps ApplicationRepository, jobs JobRepository) error) error

	// Create inserts an application; an existing (user, job) pair yields ErrDuplicateKey
	Create(app *models.Application) error

	// FindByID finds an application by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Application, error)

	// FindByUserAndJob finds the application of a user for a job
	FindByUserAndJob(userID, jobID uint64) (*models.Application, error)

	// UpdateStatusIfPending sets the status and note only while the application
	// is still pending. It reports whether a row was changed.
	UpdateStatusIfPending(id uint64, status models.ApplicationStatus, note string) (bool, error)

	// DeleteIfPending deletes the application only while it is still pending.
	// It reports whether a row was deleted.
	DeleteIfPending(id uint64) (bool, error)

	// ListByUser lists a user's applications, newest first
	ListByUser(userID uint64) ([]models.Application, error)

	// ListByCompany lists applications to a company's jobs, newest first
	ListByCompany(companyID uint64) ([]models.Application, error)

	// ListByJob lists applications to a job, newest first
	ListByJob(jobID uint64) ([]models.Application, error)

	// CountByStatus aggregates application counts per status
	CountByStatus(filter ApplicationFilter) (map[models.ApplicationStatus]int64, error)
}

// ApplicationFilter scopes application aggregates to one tenant
type ApplicationFilter struct {
	UserID    *uint64
	CompanyID *uint64
	JobID     *uint64
}

// isDuplicateKey reports whether err is a unique index violation. Drivers
// without error translation are recognised by their messages.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
