package model

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID                uuid.UUID `gorm:"primaryKey;type:uuid"`
	JobID             uuid.UUID `gorm:"column:job_id;type:uuid;not null;uniqueIndex:reviews_job_id_key"`
	ProviderID        string    `gorm:"column:provider_id;type:VARCHAR(255);not null;index"`
	RequesterID       string    `gorm:"column:requester_id;type:VARCHAR(255);not null"`
	Rating            int       `gorm:"column:rating;not null"`
	Comment           string    `gorm:"column:comment;type:TEXT"`
	HiddenByRequester bool      `gorm:"column:hidden_by_requester;not null;default:false"`
	HiddenByProvider  bool      `gorm:"column:hidden_by_provider;not null;default:false"`
	CreatedAt         time.Time `gorm:"not null"`
}

type ReviewList []Review
