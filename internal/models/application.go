package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Application links one user to one job. The (user_id, job_id) pair is unique.
type Application struct {
	ID          uint64            `gorm:"primarykey" json:"id"`
	UserID      uint64            `gorm:"not null;uniqueIndex:idx_applications_user_job,priority:1" json:"user_id"`
	JobID       uint64            `gorm:"not null;uniqueIndex:idx_applications_user_job,priority:2;index" json:"job_id"`
	CompanyID   uint64            `gorm:"not null;index" json:"company_id"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CompanyNote string            `gorm:"type:text" json:"company_note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Job     Job     `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
