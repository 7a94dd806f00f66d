package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/pkg/validation"
)

// Widths of the name and slug columns.
const (
	MaxNameLength = 100
	MaxSlugLength = 120
)

var (
	ErrCategoryNotFound = errors.New("category_not_found")
	ErrCategoryInUse    = errors.New("category_in_use")

	ErrInvalidName   = validation.New("name", "invalid_name", "name is required")
	ErrNameTooLong   = validation.New("name", "name_too_long", "name must be at most 100 characters")
	ErrDuplicateName = validation.New("name", "duplicate_name", "a category with this name already exists")
)

type Category struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string       `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string       `json:"slug" gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string       `json:"description" gorm:"type:text"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null"`
}

func (Category) TableName() string { return "categories" }
