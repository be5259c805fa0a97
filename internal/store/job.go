package store

import (
	"context"
	"errors"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByID
	SortByCreatedTime
	SortByScheduledTime
)

// JobCondition is the state a job must still be in for a conditional write
// to apply. Nil fields are not checked.
type JobCondition struct {
	Status      model.JobStatus
	AssignedTo  *string
	PostedBy    *string
	ReviewUnset bool
}

// JobUpdate lists the columns a conditional write sets. Nil fields are left
// untouched.
type JobUpdate struct {
	Status            *model.JobStatus
	AssignedTo        *string
	ReviewID          *uuid.UUID
	HiddenByRequester *bool
	HiddenByProvider  *bool
}

func (u JobUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.AssignedTo != nil {
		cols["assigned_to"] = *u.AssignedTo
	}
	if u.ReviewID != nil {
		cols["review_id"] = *u.ReviewID
	}
	if u.HiddenByRequester != nil {
		cols["hidden_by_requester"] = *u.HiddenByRequester
	}
	if u.HiddenByProvider != nil {
		cols["hidden_by_provider"] = *u.HiddenByProvider
	}
	return cols
}

type Job interface {
	Create(ctx context.Context, job model.Job) (*model.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
	List(ctx context.Context, filter *JobQueryFilter, opts *JobQueryOptions) (model.JobList, error)
	ConditionalUpdate(ctx context.Context, id uuid.UUID, cond JobCondition, update JobUpdate) (*model.Job, error)
	ConditionalDelete(ctx context.Context, id uuid.UUID, cond JobCondition) error
	BusyProviders(ctx context.Context, date string) ([]string, error)
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (j *JobStore) Create(ctx context.Context, job model.Job) (*model.Job, error) {
	if err := j.getDB(ctx).WithContext(ctx).Create(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &job, nil
}

func (j *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job := model.Job{}
	if err := j.getDB(ctx).WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (j *JobStore) List(ctx context.Context, filter *JobQueryFilter, opts *JobQueryOptions) (model.JobList, error) {
	var jobs model.JobList
	tx := j.getDB(ctx).WithContext(ctx).Model(&jobs)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ConditionalUpdate applies update in a single statement guarded by cond:
//
//	UPDATE jobs SET ... WHERE id = ? AND status = ? [AND assigned_to = ?] [AND posted_by = ?] [AND review_id IS NULL]
//
// ErrNoMatch means the row is gone or no longer in the expected state.
func (j *JobStore) ConditionalUpdate(ctx context.Context, id uuid.UUID, cond JobCondition, update JobUpdate) (*model.Job, error) {
	cols := update.columns()
	if len(cols) == 0 {
		return nil, errors.New("conditional update without columns")
	}

	result := j.guarded(ctx, id, cond).Model(&model.Job{}).Updates(cols)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNoMatch
	}

	return j.Get(ctx, id)
}

// ConditionalDelete hard deletes the job if it still satisfies cond.
func (j *JobStore) ConditionalDelete(ctx context.Context, id uuid.UUID, cond JobCondition) error {
	result := j.guarded(ctx, id, cond).Delete(&model.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoMatch
	}
	return nil
}

// BusyProviders returns the distinct providers holding an in-progress job on date.
func (j *JobStore) BusyProviders(ctx context.Context, date string) ([]string, error) {
	var ids []string
	err := j.getDB(ctx).WithContext(ctx).
		Model(&model.Job{}).
		Where("status = ? AND date = ? AND assigned_to <> ''", model.JobStatusInProgress, date).
		Distinct("assigned_to").
		Order("assigned_to").
		Pluck("assigned_to", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (j *JobStore) guarded(ctx context.Context, id uuid.UUID, cond JobCondition) *gorm.DB {
	tx := j.getDB(ctx).WithContext(ctx).Where("id = ? AND status = ?", id, cond.Status)
	if cond.AssignedTo != nil {
		tx = tx.Where("assigned_to = ?", *cond.AssignedTo)
	}
	if cond.PostedBy != nil {
		tx = tx.Where("posted_by = ?", *cond.PostedBy)
	}
	if cond.ReviewUnset {
		tx = tx.Where("review_id IS NULL")
	}
	return tx
}

func (j *JobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return j.db
}
