package service

import "errors"

// Sentinel errors mapped to HTTP codes in the delivery layer.
var (
	// Malformed identity references supplied by the caller.
	ErrInvalidID = errors.New("invalid id format")

	// Malformed calendar dates supplied to the sweep.
	ErrInvalidDate = errors.New("invalid date format")

	// Missing or filtered-out entities.
	ErrStudentNotFound    = errors.New("student not found")
	ErrGradeNotFound      = errors.New("grade not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAssignmentNotFound = errors.New("student assignment not found")
	ErrStudentsInactive   = errors.New("one or more students not found or inactive")

	// Uniqueness contract violations.
	ErrDuplicateAttendance = errors.New("attendance already marked for today")
	ErrIndexNumberTaken    = errors.New("index number already exists")
	ErrGradeLevelTaken     = errors.New("grade already exists")
	ErrClassTaken          = errors.New("class already exists for this grade and section")
	ErrEmailTaken          = errors.New("admin with this email already exists")
	ErrAlreadyAssigned     = errors.New("student already has an assignment for this academic year")

	// Reads that found nothing.
	ErrNoAttendanceRecords = errors.New("no attendance records found for this student")
	ErrNoStudents          = errors.New("no students found")

	// Credentials.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
