package models

import (
	"time"
)

type Class struct {
	ID          string     `json:"id" db:"id"`
	GradeID     string     `json:"grade_id" db:"grade_id"`
	SectionName string     `json:"section_name" db:"section_name"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
