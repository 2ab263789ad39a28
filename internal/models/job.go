package models

import "time"

type ContractType string

const (
	ContractFullTime   ContractType = "full_time"
	ContractPartTime   ContractType = "part_time"
	ContractFixedTerm  ContractType = "fixed_term"
	ContractInternship ContractType = "internship"
	ContractFreelance  ContractType = "freelance"
)

// Valid reports whether the contract type is one of the known values.
func (t ContractType) Valid() bool {
	switch t {
	case ContractFullTime, ContractPartTime, ContractFixedTerm, ContractInternship, ContractFreelance:
		return true
	default:
		return false
	}
}

type Job struct {
	ID                 uint64       `gorm:"primarykey" json:"id"`
	CompanyID          uint64       `gorm:"not null;index" json:"company_id"`
	Title              string       `gorm:"type:varchar(255);not null" json:"title"`
	Description        string       `gorm:"type:text" json:"description"`
	Salary             string       `gorm:"type:varchar(100)" json:"salary"`
	ContractType       ContractType `gorm:"type:varchar(30)" json:"contract_type"`
	Location           string       `gorm:"type:varchar(255)" json:"location"`
	RequiredSkills     []string     `gorm:"type:text;serializer:json" json:"required_skills"`
	RequiredExperience string       `gorm:"type:text" json:"required_experience"`
	Active             bool         `gorm:"not null;default:true;index" json:"active"`
	ApplicationCount   int64        `gorm:"not null;default:0" json:"application_count"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`

	// Relations
	Company      Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}
