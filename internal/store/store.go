package store

import (
	"context"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Job() Job
	Review() Review
	User() User
	Category() Category
	InitialMigration(ctx context.Context) error
	Seed(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db       *gorm.DB
	job      Job
	review   Review
	user     User
	category Category
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		job:      NewJobStore(db),
		review:   NewReviewStore(db),
		user:     NewUserStore(db),
		category: NewCategoryCache(NewCategoryStore(db)),
		db:       db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) Review() Review {
	return s.review
}

func (s *DataStore) User() User {
	return s.user
}

func (s *DataStore) Category() Category {
	return s.category
}

// InitialMigration creates the schema from the models. It is used when no
// goose migration folder is configured.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&model.Category{}, &model.User{}, &model.Job{}, &model.Review{})
}

// defaultCategories is the catalog installed by Seed. IDs are fixed so the
// seed can run repeatedly.
var defaultCategories = []model.Category{
	{ID: uuid.MustParse("6f1c1d6e-0b44-4e0a-9a3e-1f0a7c1b2001"), Name: "Plumbing", Icon: "icons/plumbing.svg"},
	{ID: uuid.MustParse("6f1c1d6e-0b44-4e0a-9a3e-1f0a7c1b2002"), Name: "Electrical", Icon: "icons/electrical.svg"},
	{ID: uuid.MustParse("6f1c1d6e-0b44-4e0a-9a3e-1f0a7c1b2003"), Name: "Cleaning", Icon: "icons/cleaning.svg"},
	{ID: uuid.MustParse("6f1c1d6e-0b44-4e0a-9a3e-1f0a7c1b2004"), Name: "Carpentry", Icon: "icons/carpentry.svg"},
	{ID: uuid.MustParse("6f1c1d6e-0b44-4e0a-9a3e-1f0a7c1b2005"), Name: "Gardening", Icon: "icons/gardening.svg"},
	{ID: uuid.MustParse("6f1c1d6e-0b44-4e0a-9a3e-1f0a7c1b2006"), Name: "Moving", Icon: "icons/moving.svg"},
}

func (s *DataStore) Seed(ctx context.Context) error {
	tx, err := newTransaction(s.db.WithContext(ctx))
	if err != nil {
		return err
	}

	categories := make([]model.Category, len(defaultCategories))
	copy(categories, defaultCategories)

	if err := tx.tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "icon"}),
	}).Create(&categories).Error; err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
