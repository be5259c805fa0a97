package store

import (
	"context"
	"errors"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review interface {
	Create(ctx context.Context, review model.Review) (*model.Review, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
	List(ctx context.Context, filter *ReviewQueryFilter) (model.ReviewList, error)
	UpdateVisibility(ctx context.Context, id uuid.UUID, hiddenByRequester, hiddenByProvider *bool) (*model.Review, error)
}

type ReviewStore struct {
	db *gorm.DB
}

// Make sure we conform to Review interface
var _ Review = (*ReviewStore)(nil)

func NewReviewStore(db *gorm.DB) Review {
	return &ReviewStore{db: db}
}

// Create inserts the review. A second review for the same job fails with
// ErrDuplicateKey on the unique job_id index.
func (r *ReviewStore) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	if err := r.getDB(ctx).WithContext(ctx).Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewStore) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	review := model.Review{}
	if err := r.getDB(ctx).WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewStore) List(ctx context.Context, filter *ReviewQueryFilter) (model.ReviewList, error) {
	var reviews model.ReviewList
	tx := r.getDB(ctx).WithContext(ctx).Model(&reviews).Order("created_at DESC")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewStore) UpdateVisibility(ctx context.Context, id uuid.UUID, hiddenByRequester, hiddenByProvider *bool) (*model.Review, error) {
	review := model.Review{ID: id}
	selectFields := []string{}
	if hiddenByRequester != nil {
		review.HiddenByRequester = *hiddenByRequester
		selectFields = append(selectFields, "hidden_by_requester")
	}
	if hiddenByProvider != nil {
		review.HiddenByProvider = *hiddenByProvider
		selectFields = append(selectFields, "hidden_by_provider")
	}
	if len(selectFields) == 0 {
		return r.Get(ctx, id)
	}

	result := r.getDB(ctx).WithContext(ctx).Model(&review).Select(selectFields).Updates(&review)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return r.Get(ctx, id)
}

func (r *ReviewStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return r.db
}
