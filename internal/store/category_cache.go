package store

import (
	"context"
	"sync"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
)

// CategoryCache is a wrapper around a Category store which caches icons.
// The catalog only grows, so entries are never evicted.
type CategoryCache struct {
	delegate Category
	icons    map[uuid.UUID]string
	mu       sync.RWMutex
}

func NewCategoryCache(delegate Category) Category {
	return &CategoryCache{
		delegate: delegate,
		icons:    make(map[uuid.UUID]string),
	}
}

func (c *CategoryCache) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	created, err := c.delegate.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.icons[created.ID] = created.Icon

	return created, nil
}

func (c *CategoryCache) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return c.delegate.Get(ctx, id)
}

func (c *CategoryCache) List(ctx context.Context) (model.CategoryList, error) {
	return c.delegate.List(ctx)
}

func (c *CategoryCache) Icon(ctx context.Context, id uuid.UUID) (string, error) {
	// try cache first
	c.mu.RLock()
	icon, found := c.icons[id]
	c.mu.RUnlock()
	if found {
		return icon, nil
	}

	// read it from db
	icon, err := c.delegate.Icon(ctx, id)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.icons[id] = icon
	c.mu.Unlock()

	return icon, nil
}
