package store

import (
	"context"
	"errors"

	"github.com/AakashShahi/workday/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type User interface {
	Ensure(ctx context.Context, user model.User) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, filter *UserQueryFilter) (model.UserList, error)
	ReconcileAvailability(ctx context.Context, busy []string) (int64, error)
}

type UserStore struct {
	db *gorm.DB
}

// Make sure we conform to User interface
var _ User = (*UserStore)(nil)

func NewUserStore(db *gorm.DB) User {
	return &UserStore{db: db}
}

// Ensure inserts the user when it is unknown. An existing row is left as is,
// so availability keeps its reconciled value.
func (u *UserStore) Ensure(ctx context.Context, user model.User) (*model.User, error) {
	user.Available = true
	if err := u.getDB(ctx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&user).Error; err != nil {
		return nil, err
	}
	return u.Get(ctx, user.ID)
}

func (u *UserStore) Get(ctx context.Context, id string) (*model.User, error) {
	user := model.User{}
	if err := u.getDB(ctx).WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) List(ctx context.Context, filter *UserQueryFilter) (model.UserList, error) {
	var users model.UserList
	tx := u.getDB(ctx).WithContext(ctx).Model(&users).Order("id")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ReconcileAvailability marks exactly the busy providers unavailable and
// every other provider available, with two bulk writes in one transaction.
// It returns the number of rows whose flag changed.
func (u *UserStore) ReconcileAvailability(ctx context.Context, busy []string) (int64, error) {
	var changed int64
	err := u.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := func() *gorm.DB {
			return tx.Model(&model.User{}).Where("role = ?", model.RoleProvider)
		}

		if len(busy) > 0 {
			result := providers().
				Where("id IN ? AND available = ?", busy, true).
				Update("available", false)
			if result.Error != nil {
				return result.Error
			}
			changed += result.RowsAffected
		}

		free := providers().Where("available = ?", false)
		if len(busy) > 0 {
			free = free.Where("id NOT IN ?", busy)
		}
		result := free.Update("available", true)
		if result.Error != nil {
			return result.Error
		}
		changed += result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func (u *UserStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return u.db
}
