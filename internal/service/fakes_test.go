package service

import (
	"context"
	"fmt"
	"time"

	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/repository"
)

// In-memory repository fakes backing the service tests. Conditional-insert
// semantics mirror the ON CONFLICT DO NOTHING behavior of the real
// repositories.

type fakeStudentRepo struct {
	students map[string]*models.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*models.Student)}
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	cp := *student
	r.students[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) GetByIndexNumber(ctx context.Context, indexNumber string) (*models.Student, error) {
	for _, s := range r.students {
		if s.IndexNumber == indexNumber && s.DeletedAt == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentRepo) GetAllActive(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	for _, s := range r.students {
		if s.Status && s.DeletedAt == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) GetActiveByIDs(ctx context.Context, ids []string) ([]models.Student, error) {
	var out []models.Student
	for _, id := range ids {
		if s, ok := r.students[id]; ok && s.Status && s.DeletedAt == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) GetAllRefs(ctx context.Context) ([]models.StudentRef, error) {
	var out []models.StudentRef
	for _, s := range r.students {
		if s.DeletedAt == nil {
			out = append(out, models.StudentRef{ID: s.ID, GradeID: s.GradeID, ClassID: s.ClassID})
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	cp := *student
	r.students[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	s, ok := r.students[id]
	if !ok || s.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	s.DeletedAt = &now
	return true, nil
}

func (r *fakeStudentRepo) Deactivate(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if s, ok := r.students[id]; ok && s.DeletedAt == nil {
			s.Status = false
			n++
		}
	}
	return n, nil
}

type fakeAssignmentRepo struct {
	assignments map[string]*models.ClassAssignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]*models.ClassAssignment)}
}

func (r *fakeAssignmentRepo) hasStudentYear(studentID string, year int) bool {
	for _, a := range r.assignments {
		if a.StudentID == studentID && a.AcademicYear == year {
			return true
		}
	}
	return false
}

func (r *fakeAssignmentRepo) CreateBatch(ctx context.Context, assignments []models.ClassAssignment) error {
	for _, a := range assignments {
		if r.hasStudentYear(a.StudentID, a.AcademicYear) {
			continue
		}
		cp := a
		r.assignments[a.ID] = &cp
	}
	return nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (*models.ClassAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) GetAssignedStudentIDs(ctx context.Context, studentIDs []string, academicYear int) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range studentIDs {
		if r.hasStudentYear(id, academicYear) {
			out[id] = true
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) GetAllAssignedStudentIDs(ctx context.Context, academicYear *int) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, a := range r.assignments {
		if academicYear != nil && a.AcademicYear != *academicYear {
			continue
		}
		out[a.StudentID] = true
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Update(ctx context.Context, assignment *models.ClassAssignment) error {
	if _, ok := r.assignments[assignment.ID]; !ok {
		return fmt.Errorf("assignment %s does not exist", assignment.ID)
	}
	for id, a := range r.assignments {
		if id != assignment.ID && a.StudentID == assignment.StudentID && a.AcademicYear == assignment.AcademicYear {
			return repository.ErrDuplicateKey
		}
	}
	cp := *assignment
	r.assignments[assignment.ID] = &cp
	return nil
}

// DeleteByStudent removes the student's most recent assignment, matching the
// single-row delete in the real repository.
func (r *fakeAssignmentRepo) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	var latestID string
	latestYear := -1
	for id, a := range r.assignments {
		if a.StudentID == studentID && a.AcademicYear > latestYear {
			latestYear = a.AcademicYear
			latestID = id
		}
	}
	if latestID == "" {
		return 0, nil
	}
	delete(r.assignments, latestID)
	return 1, nil
}

type fakeAttendanceRepo struct {
	records map[string]*models.Attendance // keyed by student|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*models.Attendance)}
}

func attendanceKey(studentID, scanDate string) string {
	return studentID + "|" + scanDate
}

func (r *fakeAttendanceRepo) Insert(ctx context.Context, record *models.Attendance) (bool, error) {
	key := attendanceKey(record.StudentID, record.ScanDate)
	if _, ok := r.records[key]; ok {
		return false, nil
	}
	cp := *record
	r.records[key] = &cp
	return true, nil
}

func (r *fakeAttendanceRepo) ExistsForDate(ctx context.Context, studentID, scanDate string) (bool, error) {
	_, ok := r.records[attendanceKey(studentID, scanDate)]
	return ok, nil
}

func (r *fakeAttendanceRepo) GetByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, rec := range r.records {
		if rec.StudentID == studentID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeGradeRepo struct {
	grades map[string]*models.Grade
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{grades: make(map[string]*models.Grade)}
}

func (r *fakeGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	cp := *grade
	r.grades[grade.ID] = &cp
	return nil
}

func (r *fakeGradeRepo) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	g, ok := r.grades[id]
	if !ok || g.DeletedAt != nil {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGradeRepo) GetByLevel(ctx context.Context, level int) (*models.Grade, error) {
	for _, g := range r.grades {
		if g.GradeLevel == level && g.DeletedAt == nil {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeGradeRepo) GetAll(ctx context.Context) ([]models.Grade, error) {
	var out []models.Grade
	for _, g := range r.grades {
		if g.DeletedAt == nil {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGradeRepo) Update(ctx context.Context, grade *models.Grade) error {
	cp := *grade
	r.grades[grade.ID] = &cp
	return nil
}

func (r *fakeGradeRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	g, ok := r.grades[id]
	if !ok || g.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	g.DeletedAt = &now
	return true, nil
}

func (r *fakeGradeRepo) Exists(ctx context.Context, id string) (bool, error) {
	g, ok := r.grades[id]
	return ok && g.DeletedAt == nil, nil
}

type fakeClassRepo struct {
	classes map[string]*models.Class
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: make(map[string]*models.Class)}
}

func (r *fakeClassRepo) Create(ctx context.Context, class *models.Class) error {
	cp := *class
	r.classes[class.ID] = &cp
	return nil
}

func (r *fakeClassRepo) GetByID(ctx context.Context, id string) (*models.Class, error) {
	c, ok := r.classes[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClassRepo) GetByGradeAndSection(ctx context.Context, gradeID, sectionName string) (*models.Class, error) {
	for _, c := range r.classes {
		if c.GradeID == gradeID && c.SectionName == sectionName && c.DeletedAt == nil {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClassRepo) GetAll(ctx context.Context) ([]models.Class, error) {
	var out []models.Class
	for _, c := range r.classes {
		if c.DeletedAt == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) GetByGrade(ctx context.Context, gradeID string) ([]models.Class, error) {
	var out []models.Class
	for _, c := range r.classes {
		if c.GradeID == gradeID && c.DeletedAt == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) Update(ctx context.Context, class *models.Class) error {
	cp := *class
	r.classes[class.ID] = &cp
	return nil
}

func (r *fakeClassRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	c, ok := r.classes[id]
	if !ok || c.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	c.DeletedAt = &now
	return true, nil
}

func (r *fakeClassRepo) Exists(ctx context.Context, id string) (bool, error) {
	c, ok := r.classes[id]
	return ok && c.DeletedAt == nil, nil
}

type fakeAdminRepo struct {
	admins map[string]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.Admin)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	cp := *admin
	r.admins[admin.ID] = &cp
	return nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	a, ok := r.admins[id]
	if !ok || a.DeletedAt != nil {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email && a.DeletedAt == nil {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) GetAll(ctx context.Context) ([]models.Admin, error) {
	var out []models.Admin
	for _, a := range r.admins {
		if a.DeletedAt == nil {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	cp := *admin
	r.admins[admin.ID] = &cp
	return nil
}

func (r *fakeAdminRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	a, ok := r.admins[id]
	if !ok || a.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	a.DeletedAt = &now
	return true, nil
}
