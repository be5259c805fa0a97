package service

import (
	"context"
	"time"

	"github.com/AakashShahi/workday/pkg/schedule"
	"github.com/google/uuid"
)

// Catalog resolves the icon of a category.
type Catalog interface {
	Icon(ctx context.Context, id uuid.UUID) (string, error)
}

type collaborators struct {
	catalog  Catalog
	notifier Notifier
	auditor  Auditor
	calendar *schedule.Calendar
	timeout  time.Duration
	now      func() time.Time
}

type Option func(*collaborators)

func WithCatalog(c Catalog) Option {
	return func(o *collaborators) {
		o.catalog = c
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *collaborators) {
		o.notifier = n
	}
}

func WithAuditor(a Auditor) Option {
	return func(o *collaborators) {
		o.auditor = a
	}
}

func WithCalendar(c *schedule.Calendar) Option {
	return func(o *collaborators) {
		o.calendar = c
	}
}

// WithStoreTimeout bounds every operation. Zero disables the bound.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *collaborators) {
		o.timeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *collaborators) {
		o.now = now
	}
}

func newCollaborators(catalog Catalog, opts ...Option) collaborators {
	utc, _ := schedule.NewCalendar("")
	c := collaborators{
		catalog:  catalog,
		notifier: noopNotifier{},
		auditor:  noopAuditor{},
		calendar: utc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c collaborators) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
