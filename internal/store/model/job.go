package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusRequested  JobStatus = "requested"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

// ActiveJobStatuses are the statuses the expiry sweep is allowed to fail.
var ActiveJobStatuses = []JobStatus{JobStatusAssigned, JobStatusRequested, JobStatusInProgress}

func (s JobStatus) String() string {
	return string(s)
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusOpen, JobStatusAssigned, JobStatusRequested, JobStatusInProgress, JobStatusDone, JobStatusFailed:
		return true
	}
	return false
}

type Job struct {
	ID                uuid.UUID  `gorm:"primaryKey;type:uuid"`
	PostedBy          string     `gorm:"column:posted_by;type:VARCHAR(255);not null;index"`
	AssignedTo        string     `gorm:"column:assigned_to;type:VARCHAR(255);not null;default:'';index"`
	CategoryID        uuid.UUID  `gorm:"column:category_id;type:uuid;not null"`
	CategoryIcon      string     `gorm:"column:category_icon;type:VARCHAR(255)"`
	Title             string     `gorm:"column:title;type:VARCHAR(255);not null"`
	Description       string     `gorm:"column:description;type:TEXT"`
	Location          string     `gorm:"column:location;type:VARCHAR(255)"`
	Price             int64      `gorm:"column:price;not null;default:0"`
	Date              string     `gorm:"column:date;type:VARCHAR(10);not null;index"`
	Time              string     `gorm:"column:time;type:VARCHAR(8);not null"`
	ScheduledAt       time.Time  `gorm:"column:scheduled_at;not null"`
	Status            JobStatus  `gorm:"column:status;type:VARCHAR(20);not null;index"`
	ReviewID          *uuid.UUID `gorm:"column:review_id;type:uuid"`
	HiddenByRequester bool       `gorm:"column:hidden_by_requester;not null;default:false"`
	HiddenByProvider  bool       `gorm:"column:hidden_by_provider;not null;default:false"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time
}

type JobList []Job

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

// IsAssigned reports whether a provider currently holds the job.
func (j Job) IsAssigned() bool {
	return j.AssignedTo != ""
}

// IsParty reports whether the user posted the job or is assigned to it.
func (j Job) IsParty(userID string) bool {
	return userID != "" && (j.PostedBy == userID || j.AssignedTo == userID)
}
