package models

import (
	"time"
)

type AttendanceStatus string

const (
	// AttendancePresent is set only by an inbound scan.
	AttendancePresent AttendanceStatus = "P"
	// AttendanceAbsent is set only by the end-of-day sweep.
	AttendanceAbsent AttendanceStatus = "A"
)

func (s AttendanceStatus) String() string {
	return string(s)
}

// AbsentSentinelTime marks sweep-inserted records, which carry no real scan time.
const AbsentSentinelTime = "00:00:00"

// Attendance is one record per student per calendar date. ScanDate is a
// date-only key ("2006-01-02"); ScanTime is the time of day of the present
// scan, or the sentinel for absences.
type Attendance struct {
	ID        string           `json:"id" db:"id"`
	StudentID string           `json:"student_id" db:"student_id"`
	GradeID   *string          `json:"grade_id,omitempty" db:"grade_id"`
	ClassID   *string          `json:"class_id,omitempty" db:"class_id"`
	ScanDate  string           `json:"scan_date" db:"scan_date"`
	ScanTime  string           `json:"time" db:"scan_time"`
	Status    AttendanceStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty" db:"updated_at"`
	DeletedAt *time.Time       `json:"deleted_at,omitempty" db:"deleted_at"`
}

// SweepSummary reports one absence-sweep run.
type SweepSummary struct {
	Date    string `json:"date"`
	Marked  int    `json:"marked"`
	Skipped int    `json:"skipped"`
}
