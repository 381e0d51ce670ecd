package models

import (
	"time"
)

// ClassAssignment links a student to a grade and class for one academic year.
// At most one assignment may exist per (student, academic_year); the service
// enforces this before insert and the storage schema backs it with a unique
// index.
type ClassAssignment struct {
	ID           string     `json:"id" db:"id"`
	StudentID    string     `json:"student_id" db:"student_id"`
	GradeID      string     `json:"grade_id" db:"grade_id"`
	ClassID      string     `json:"class_id" db:"class_id"`
	AcademicYear int        `json:"academic_year" db:"academic_year"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
