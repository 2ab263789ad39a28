package dto

import (
	"time"

	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/services"
)

// ApplicationJobDTO is the job embedded in an application response
type ApplicationJobDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	ContractType models.ContractType `json:"contract_type"`
	Location     string              `json:"location"`
	Active       bool                `json:"active"`
}

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID          uint64                   `json:"id"`
	UserID      uint64                   `json:"user_id"`
	JobID       uint64                   `json:"job_id"`
	CompanyID   uint64                   `json:"company_id"`
	CoverLetter string                   `json:"cover_letter"`
	Status      models.ApplicationStatus `json:"status"`
	CompanyNote string                   `json:"company_note,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	Job         *ApplicationJobDTO       `json:"job,omitempty"`
	User        *UserSummaryDTO          `json:"user,omitempty"`
	Company     *CompanySummaryDTO       `json:"company,omitempty"`
}

// ApplicationListResponse wraps a list of applications
type ApplicationListResponse struct {
	Applications []ApplicationDTO `json:"applications"`
	Total        int              `json:"total"`
}

// StatisticsDTO holds application counts per status
type StatisticsDTO struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// CoverLetterDTO is a generated cover letter suggestion
type CoverLetterDTO struct {
	JobID       uint64 `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
}

// ToApplicationDTO converts an Application model to ApplicationDTO
func ToApplicationDTO(app models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:          app.ID,
		UserID:      app.UserID,
		JobID:       app.JobID,
		CompanyID:   app.CompanyID,
		CoverLetter: app.CoverLetter,
		Status:      app.Status,
		CompanyNote: app.CompanyNote,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}

	// Include relations if preloaded
	if app.Job.ID != 0 {
		dto.Job = &ApplicationJobDTO{
			ID:           app.Job.ID,
			Title:        app.Job.Title,
			ContractType: app.Job.ContractType,
			Location:     app.Job.Location,
			Active:       app.Job.Active,
		}
	}
	if app.User.ID != 0 {
		user := ToUserSummaryDTO(app.User)
		dto.User = &user
	}
	if app.Company.ID != 0 {
		company := ToCompanySummaryDTO(app.Company)
		dto.Company = &company
	}

	return dto
}

// ToApplicationListResponse converts a slice of applications to ApplicationListResponse
func ToApplicationListResponse(apps []models.Application) ApplicationListResponse {
	items := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		items[i] = ToApplicationDTO(app)
	}
	return ApplicationListResponse{
		Applications: items,
		Total:        len(items),
	}
}

// ToStatisticsDTO converts service statistics to StatisticsDTO
func ToStatisticsDTO(stats services.ApplicationStatistics) StatisticsDTO {
	return StatisticsDTO{
		Total:    stats.Total,
		Pending:  stats.Pending,
		Accepted: stats.Accepted,
		Rejected: stats.Rejected,
	}
}
