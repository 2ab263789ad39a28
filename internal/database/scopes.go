package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/job-board-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// ActiveJobs restricts a job query to postings that accept applications
func ActiveJobs(db *gorm.DB) *gorm.DB {
	return db.Where("jobs.active = ?", true)
}
