package models

import (
	"time"
)

type Student struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	IndexNumber string     `json:"index_number" db:"index_number"`
	DOB         time.Time  `json:"dob" db:"dob"`
	Address     string     `json:"address" db:"address"`
	City        string     `json:"city" db:"city"`
	NIC         *string    `json:"nic,omitempty" db:"nic"`
	Image       *string    `json:"image,omitempty" db:"image"`
	GradeID     *string    `json:"grade_id,omitempty" db:"grade_id"`
	ClassID     *string    `json:"class_id,omitempty" db:"class_id"`
	Status      bool       `json:"status" db:"status"`
	JoinYear    *int       `json:"join_year,omitempty" db:"join_year"`
	LeavingYear *int       `json:"leaving_year,omitempty" db:"leaving_year"`
	Guardians   []Guardian `json:"guardians,omitempty"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

type Guardian struct {
	ID            string  `json:"id" db:"id"`
	StudentID     string  `json:"student_id" db:"student_id"`
	Name          string  `json:"name" db:"name"`
	Relationship  string  `json:"relationship" db:"relationship"`
	ContactNumber string  `json:"contact_number" db:"contact_number"`
	Email         *string `json:"email,omitempty" db:"email"`
}

// StudentSummary is the trimmed shape returned by the unassigned listing.
type StudentSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IndexNumber string `json:"index_number"`
}

// StudentRef carries the last-known placement used by the absence sweep.
type StudentRef struct {
	ID      string  `db:"id"`
	GradeID *string `db:"grade_id"`
	ClassID *string `db:"class_id"`
}
