package store

import (
	"context"
	"errors"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category interface {
	Create(ctx context.Context, category model.Category) (*model.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) (model.CategoryList, error)
	Icon(ctx context.Context, id uuid.UUID) (string, error)
}

type CategoryStore struct {
	db *gorm.DB
}

// Make sure we conform to Category interface
var _ Category = (*CategoryStore)(nil)

func NewCategoryStore(db *gorm.DB) Category {
	return &CategoryStore{db: db}
}

func (c *CategoryStore) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	if err := c.getDB(ctx).WithContext(ctx).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &category, nil
}

func (c *CategoryStore) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category := model.Category{}
	if err := c.getDB(ctx).WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (c *CategoryStore) List(ctx context.Context) (model.CategoryList, error) {
	var categories model.CategoryList
	if err := c.getDB(ctx).WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CategoryStore) Icon(ctx context.Context, id uuid.UUID) (string, error) {
	category, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return category.Icon, nil
}

func (c *CategoryStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return c.db
}
