package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobType represents the employment type of a job listing.
type JobType string

const (
	FullTime   JobType = "Full-time"
	PartTime   JobType = "Part-time"
	Contract   JobType = "Contract"
	Internship JobType = "Internship"
)

// ParseJobType validates a raw job type against the fixed enumeration.
func ParseJobType(s string) (JobType, error) {
	switch t := JobType(s); t {
	case FullTime, PartTime, Contract, Internship:
		return t, nil
	default:
		return "", fmt.Errorf("unknown job type %q", s)
	}
}

// Job is a single listing published under a company. Jobs are immutable
// after creation and carry no persisted ordering; display order is
// whatever the retrieval produced.
type Job struct {
	// ID is the unique identifier for the job.
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	// CompanyID references the owning company.
	CompanyID   uuid.UUID `json:"companyId" gorm:"type:uuid;index"`
	Title       string    `json:"title" gorm:"size:120"`
	Department  string    `json:"department" gorm:"size:120"`
	Location    string    `json:"location" gorm:"size:120"`
	JobType     JobType   `json:"jobType" gorm:"size:32"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
