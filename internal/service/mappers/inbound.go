package mappers

import (
	"time"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
)

// JobCreateForm is what a requester submits to post a job. Date and Time
// are raw and get normalized by the service.
type JobCreateForm struct {
	CategoryID  uuid.UUID
	Title       string
	Description string
	Location    string
	Price       int64
	Date        string
	Time        string
}

// ToJob builds the open job. date, clock and scheduledAt are the normalized
// schedule.
func (f JobCreateForm) ToJob(id uuid.UUID, postedBy string, icon string, date, clock string, scheduledAt time.Time) model.Job {
	return model.Job{
		ID:           id,
		PostedBy:     postedBy,
		CategoryID:   f.CategoryID,
		CategoryIcon: icon,
		Title:        f.Title,
		Description:  f.Description,
		Location:     f.Location,
		Price:        f.Price,
		Date:         date,
		Time:         clock,
		ScheduledAt:  scheduledAt.UTC(),
		Status:       model.JobStatusOpen,
	}
}

type ReviewForm struct {
	Rating  int
	Comment string
}

func (f ReviewForm) ToReview(id uuid.UUID, job model.Job) model.Review {
	return model.Review{
		ID:          id,
		JobID:       job.ID,
		ProviderID:  job.AssignedTo,
		RequesterID: job.PostedBy,
		Rating:      f.Rating,
		Comment:     f.Comment,
	}
}

// JobFilter narrows the jobs listed for an actor.
type JobFilter struct {
	Statuses []model.JobStatus
}
