package models

import "encoding/json"

// Data Transfer Objects

// IDList accepts either a single id string or an array of id strings, so the
// bulk-assign endpoint can take one student or many in the same field.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = IDList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = IDList(many)
	return nil
}

type MarkAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	GradeID   string `json:"grade_id" validate:"required,uuid"`
	ClassID   string `json:"class_id" validate:"required,uuid"`
	ScanDate  string `json:"scan_date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04:05"`
}

type AssignStudentsRequest struct {
	StudentIDs   IDList `json:"student_ids" validate:"required,min=1"`
	GradeID      string `json:"grade_id" validate:"required,uuid"`
	ClassID      string `json:"class_id" validate:"required,uuid"`
	AcademicYear int    `json:"academic_year" validate:"required,gte=1900,lte=2200"`
}

type AssignStudentsResult struct {
	AssignedCount int `json:"assigned_count"`
	Skipped       int `json:"skipped"`
}

type UpdateAssignmentRequest struct {
	GradeID      *string `json:"grade_id,omitempty" validate:"omitempty,uuid"`
	ClassID      *string `json:"class_id,omitempty" validate:"omitempty,uuid"`
	AcademicYear *int    `json:"academic_year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
}

type GuardianInput struct {
	Name          string  `json:"guardian_name" validate:"required,min=2,max=255"`
	Relationship  string  `json:"relationship" validate:"required,max=100"`
	ContactNumber string  `json:"contact_number" validate:"required,max=30"`
	Email         *string `json:"guardian_email,omitempty" validate:"omitempty,email"`
}

type CreateStudentRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	IndexNumber string          `json:"index_number" validate:"required,max=50"`
	DOB         string          `json:"dob" validate:"required,datetime=2006-01-02"`
	Address     string          `json:"address" validate:"required,max=500"`
	City        string          `json:"city" validate:"required,max=100"`
	NIC         *string         `json:"nic,omitempty" validate:"omitempty,max=20"`
	Image       *string         `json:"image,omitempty"`
	Guardians   []GuardianInput `json:"guardians" validate:"required,min=1,dive"`
	JoinYear    *int            `json:"join_year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
}

type UpdateStudentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	DOB         *string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	NIC         *string `json:"nic,omitempty" validate:"omitempty,max=20"`
	Image       *string `json:"image,omitempty"`
	LeavingYear *int    `json:"leaving_year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
}

type DeactivateStudentsRequest struct {
	StudentIDs IDList `json:"student_ids" validate:"required,min=1"`
}

type CreateGradeRequest struct {
	GradeLevel  int     `json:"grade_level" validate:"required,gte=1,lte=13"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateGradeRequest struct {
	GradeLevel  *int    `json:"grade_level,omitempty" validate:"omitempty,gte=1,lte=13"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type CreateClassRequest struct {
	GradeID     string  `json:"grade_id" validate:"required,uuid"`
	SectionName string  `json:"section_name" validate:"required,max=20"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateClassRequest struct {
	SectionName *string `json:"section_name,omitempty" validate:"omitempty,max=20"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type CreateAdminRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Image    *string `json:"image,omitempty"`
}

type UpdateAdminRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Image *string `json:"image,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Admin       *Admin `json:"admin"`
}
