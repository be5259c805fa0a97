package model

import "github.com/google/uuid"

type Category struct {
	ID   uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name string    `gorm:"column:name;type:VARCHAR(100);not null;uniqueIndex"`
	Icon string    `gorm:"column:icon;type:VARCHAR(255);not null"`
}

type CategoryList []Category
