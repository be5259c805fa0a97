package store

import (
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type JobQueryFilter BaseQuerier

func NewJobQueryFilter() *JobQueryFilter {
	return &JobQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *JobQueryFilter) ByID(id uuid.UUID) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ?", id)
	})
	return qf
}

func (qf *JobQueryFilter) ByStatus(statuses ...model.JobStatus) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status IN ?", statuses)
	})
	return qf
}

func (qf *JobQueryFilter) ByPostedBy(userID string) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posted_by = ?", userID)
	})
	return qf
}

func (qf *JobQueryFilter) ByAssignedTo(userID string) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("assigned_to = ?", userID)
	})
	return qf
}

func (qf *JobQueryFilter) ByDate(date string) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("date = ?", date)
	})
	return qf
}

// VisibleTo drops the jobs the user hid from its own view.
func (qf *JobQueryFilter) VisibleTo(role model.Role) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch role {
		case model.RoleRequester:
			return tx.Where("hidden_by_requester = ?", false)
		case model.RoleProvider:
			return tx.Where("hidden_by_provider = ?", false)
		default:
			return tx
		}
	})
	return qf
}

type JobQueryOptions BaseQuerier

func NewJobQueryOptions() *JobQueryOptions {
	return &JobQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *JobQueryOptions) WithSortOrder(sort SortOrder) *JobQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByID:
			return tx.Order("id")
		case SortByCreatedTime:
			return tx.Order("created_at DESC")
		case SortByScheduledTime:
			return tx.Order("scheduled_at")
		default:
			return tx
		}
	})
	return o
}

func (o *JobQueryOptions) WithLimit(limit int) *JobQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

type ReviewQueryFilter BaseQuerier

func NewReviewQueryFilter() *ReviewQueryFilter {
	return &ReviewQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *ReviewQueryFilter) ByProvider(providerID string) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("provider_id = ?", providerID)
	})
	return qf
}

func (qf *ReviewQueryFilter) ByJob(jobID uuid.UUID) *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_id = ?", jobID)
	})
	return qf
}

// Public keeps reviews neither party hid.
func (qf *ReviewQueryFilter) Public() *ReviewQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("hidden_by_requester = ? AND hidden_by_provider = ?", false, false)
	})
	return qf
}

type UserQueryFilter BaseQuerier

func NewUserQueryFilter() *UserQueryFilter {
	return &UserQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *UserQueryFilter) ByRole(role model.Role) *UserQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("role = ?", role)
	})
	return qf
}

func (qf *UserQueryFilter) ByAvailable(available bool) *UserQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("available = ?", available)
	})
	return qf
}
