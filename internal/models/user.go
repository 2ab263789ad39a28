package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100)" json:"last_name"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone"`
	Skills       []string  `gorm:"type:text;serializer:json" json:"skills"`
	Experience   string    `gorm:"type:text" json:"experience"`
	ResumeURL    string    `gorm:"type:varchar(500)" json:"resume_url"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Applications []Application `gorm:"foreignKey:UserID" json:"-"`
}
