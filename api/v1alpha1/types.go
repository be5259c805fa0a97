// Package v1alpha1 holds the wire types of the WorkDay API.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus defines model for Job.Status.
type JobStatus string

// Defines values for JobStatus.
const (
	JobStatusOpen       JobStatus = "open"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusRequested  JobStatus = "requested"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

// Job defines model for Job.
type Job struct {
	Id                uuid.UUID  `json:"id"`
	PostedBy          string     `json:"postedBy"`
	AssignedTo        *string    `json:"assignedTo,omitempty"`
	CategoryId        uuid.UUID  `json:"categoryId"`
	CategoryIcon      string     `json:"categoryIcon"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Location          string     `json:"location,omitempty"`
	Price             int64      `json:"price"`
	Date              string     `json:"date"`
	Time              string     `json:"time"`
	ScheduledAt       time.Time  `json:"scheduledAt"`
	Status            JobStatus  `json:"status"`
	ReviewId          *uuid.UUID `json:"reviewId,omitempty"`
	HiddenByRequester bool       `json:"hiddenByRequester"`
	HiddenByProvider  bool       `json:"hiddenByProvider"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// JobList defines model for JobList.
type JobList = []Job

// JobCreate defines model for JobCreate.
type JobCreate struct {
	CategoryId  uuid.UUID `json:"categoryId" validate:"required,category_id"`
	Title       string    `json:"title" validate:"required,not_blank,max=255"`
	Description string    `json:"description,omitempty" validate:"max=4096"`
	Location    string    `json:"location,omitempty" validate:"max=255"`
	Price       *int64    `json:"price,omitempty" validate:"omitempty,min=0"`
	Date        string    `json:"date" validate:"required,job_date"`
	Time        string    `json:"time" validate:"required,job_time"`
}

// ProviderChoice defines model for ProviderChoice.
type ProviderChoice struct {
	ProviderId string `json:"providerId" validate:"required,not_blank,max=255"`
}

// ReviewCreate defines model for ReviewCreate.
type ReviewCreate struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=2048"`
}

// Review defines model for Review.
type Review struct {
	Id          uuid.UUID `json:"id"`
	JobId       uuid.UUID `json:"jobId"`
	ProviderId  string    `json:"providerId"`
	RequesterId string    `json:"requesterId"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewList defines model for ReviewList.
type ReviewList = []Review

// CompletedJob defines model for CompletedJob.
type CompletedJob struct {
	Job    Job    `json:"job"`
	Review Review `json:"review"`
}

// Error defines model for Error.
type Error struct {
	Message   string `json:"message"`
	Reason    string `json:"reason"`
	RequestId string `json:"requestId,omitempty"`
}

// Health defines model for Health.
type Health struct {
	Status string `json:"status"`
}
