package models

import (
	"time"
)

type Grade struct {
	ID          string     `json:"id" db:"id"`
	GradeLevel  int        `json:"grade_level" db:"grade_level"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
