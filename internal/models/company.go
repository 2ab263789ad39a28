package models

import "time"

type Company struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Sector       string    `gorm:"type:varchar(100)" json:"sector"`
	Address      string    `gorm:"type:varchar(255)" json:"address"`
	Website      string    `gorm:"type:varchar(255)" json:"website"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Jobs []Job `gorm:"foreignKey:CompanyID" json:"-"`
}
