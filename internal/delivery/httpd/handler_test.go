package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolcore/admin-service/internal/models"
	"github.com/schoolcore/admin-service/internal/service"
	"github.com/schoolcore/admin-service/internal/worker"
)

// Service stubs with overridable behavior per test.

type stubAttendanceService struct {
	markPresent   func(ctx context.Context, req *models.MarkAttendanceRequest) (*models.Attendance, error)
	sweepAbsences func(ctx context.Context, asOf string) (*models.SweepSummary, error)
	getByStudent  func(ctx context.Context, studentID string) ([]models.Attendance, error)
}

func (s *stubAttendanceService) MarkPresent(ctx context.Context, req *models.MarkAttendanceRequest) (*models.Attendance, error) {
	return s.markPresent(ctx, req)
}

func (s *stubAttendanceService) SweepAbsences(ctx context.Context, asOf string) (*models.SweepSummary, error) {
	return s.sweepAbsences(ctx, asOf)
}

func (s *stubAttendanceService) GetByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	return s.getByStudent(ctx, studentID)
}

type stubAssignmentService struct {
	assign         func(ctx context.Context, req *models.AssignStudentsRequest) (*models.AssignStudentsResult, error)
	listUnassigned func(ctx context.Context, academicYear *int) ([]models.StudentSummary, error)
	update         func(ctx context.Context, id string, req *models.UpdateAssignmentRequest) (*models.ClassAssignment, error)
	remove         func(ctx context.Context, studentID string) error
}

func (s *stubAssignmentService) Assign(ctx context.Context, req *models.AssignStudentsRequest) (*models.AssignStudentsResult, error) {
	return s.assign(ctx, req)
}

func (s *stubAssignmentService) ListUnassigned(ctx context.Context, academicYear *int) ([]models.StudentSummary, error) {
	return s.listUnassigned(ctx, academicYear)
}

func (s *stubAssignmentService) Update(ctx context.Context, id string, req *models.UpdateAssignmentRequest) (*models.ClassAssignment, error) {
	return s.update(ctx, id, req)
}

func (s *stubAssignmentService) Remove(ctx context.Context, studentID string) error {
	return s.remove(ctx, studentID)
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}

type testEnv struct {
	router     chi.Router
	attendance *stubAttendanceService
	assignment *stubAssignmentService
	pool       *worker.Pool
	db         *stubPinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	attendance := &stubAttendanceService{}
	assignment := &stubAssignmentService{}
	db := &stubPinger{}
	pool := worker.NewPool(1, zerolog.Nop())
	pool.Start()
	t.Cleanup(pool.Stop)

	h := NewHandler(nil, nil, nil, nil, nil, assignment, attendance, pool, db, zerolog.Nop())

	router := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	h.RegisterRoutes(router, passthrough)

	return &testEnv{router: router, attendance: attendance, assignment: assignment, pool: pool, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMarkAttendanceCreated(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.markPresent = func(ctx context.Context, req *models.MarkAttendanceRequest) (*models.Attendance, error) {
		return &models.Attendance{
			ID:        "rec-1",
			StudentID: req.StudentID,
			ScanDate:  req.ScanDate,
			ScanTime:  req.Time,
			Status:    models.AttendancePresent,
		}, nil
	}

	rec := env.do(t, http.MethodPost, "/attendance", map[string]interface{}{
		"student_id": "3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43",
		"grade_id":   "7e7c9ab4-44cf-4a3f-a6f4-cf4ae04e2c3e",
		"class_id":   "9d5a1a67-0d54-4adf-b86c-5e6c0af0f30f",
		"scan_date":  "2026-09-01",
		"time":       "07:45:12",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])
}

func TestMarkAttendanceDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.markPresent = func(ctx context.Context, req *models.MarkAttendanceRequest) (*models.Attendance, error) {
		return nil, service.ErrDuplicateAttendance
	}

	rec := env.do(t, http.MethodPost, "/attendance", map[string]interface{}{
		"student_id": "3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43",
		"grade_id":   "7e7c9ab4-44cf-4a3f-a6f4-cf4ae04e2c3e",
		"class_id":   "9d5a1a67-0d54-4adf-b86c-5e6c0af0f30f",
		"scan_date":  "2026-09-01",
		"time":       "07:45:12",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestMarkAttendanceValidation(t *testing.T) {
	env := newTestEnv(t)

	// Malformed scan_date never reaches the service.
	rec := env.do(t, http.MethodPost, "/attendance", map[string]interface{}{
		"student_id": "3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43",
		"grade_id":   "7e7c9ab4-44cf-4a3f-a6f4-cf4ae04e2c3e",
		"class_id":   "9d5a1a67-0d54-4adf-b86c-5e6c0af0f30f",
		"scan_date":  "01/09/2026",
		"time":       "07:45:12",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerAbsenceSweepAcksImmediately(t *testing.T) {
	env := newTestEnv(t)

	started := make(chan struct{})
	env.attendance.sweepAbsences = func(ctx context.Context, asOf string) (*models.SweepSummary, error) {
		close(started)
		return &models.SweepSummary{Date: "2026-09-01", Marked: 3}, nil
	}

	rec := env.do(t, http.MethodPost, "/attendance/mark-absent", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Absence marking started", body["message"])

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep task was never executed")
	}
}

func TestGetAttendanceByStudentNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.getByStudent = func(ctx context.Context, studentID string) ([]models.Attendance, error) {
		return nil, service.ErrNoAttendanceRecords
	}

	rec := env.do(t, http.MethodGet, "/attendance/student/3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignStudents(t *testing.T) {
	env := newTestEnv(t)
	env.assignment.assign = func(ctx context.Context, req *models.AssignStudentsRequest) (*models.AssignStudentsResult, error) {
		assert.Len(t, req.StudentIDs, 2)
		return &models.AssignStudentsResult{AssignedCount: 1, Skipped: 1}, nil
	}

	rec := env.do(t, http.MethodPost, "/students/assign", map[string]interface{}{
		"student_ids": []string{
			"3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43",
			"7e7c9ab4-44cf-4a3f-a6f4-cf4ae04e2c3e",
		},
		"grade_id":      "9d5a1a67-0d54-4adf-b86c-5e6c0af0f30f",
		"class_id":      "c4a9b1ce-68fd-4f8c-9d8a-54fbe6dd8a11",
		"academic_year": 2026,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["assigned_count"])
	assert.Equal(t, float64(1), data["skipped"])
}

func TestAssignStudentsAcceptsSingleID(t *testing.T) {
	env := newTestEnv(t)
	env.assignment.assign = func(ctx context.Context, req *models.AssignStudentsRequest) (*models.AssignStudentsResult, error) {
		require.Len(t, req.StudentIDs, 1)
		return &models.AssignStudentsResult{AssignedCount: 1}, nil
	}

	rec := env.do(t, http.MethodPost, "/students/assign", map[string]interface{}{
		"student_ids":   "3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43",
		"grade_id":      "9d5a1a67-0d54-4adf-b86c-5e6c0af0f30f",
		"class_id":      "c4a9b1ce-68fd-4f8c-9d8a-54fbe6dd8a11",
		"academic_year": 2026,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssignStudentsUnknownStudentNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.assignment.assign = func(ctx context.Context, req *models.AssignStudentsRequest) (*models.AssignStudentsResult, error) {
		return nil, service.ErrStudentsInactive
	}

	rec := env.do(t, http.MethodPost, "/students/assign", map[string]interface{}{
		"student_ids":   "3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43",
		"grade_id":      "9d5a1a67-0d54-4adf-b86c-5e6c0af0f30f",
		"class_id":      "c4a9b1ce-68fd-4f8c-9d8a-54fbe6dd8a11",
		"academic_year": 2026,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "one or more students not found or inactive", body["message"])
}

func TestUpdateAssignmentYearConflict(t *testing.T) {
	env := newTestEnv(t)
	env.assignment.update = func(ctx context.Context, id string, req *models.UpdateAssignmentRequest) (*models.ClassAssignment, error) {
		return nil, service.ErrAlreadyAssigned
	}

	rec := env.do(t, http.MethodPut, "/students/assignments/3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43", map[string]interface{}{
		"academic_year": 2026,
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetUnassignedStudents(t *testing.T) {
	env := newTestEnv(t)
	env.assignment.listUnassigned = func(ctx context.Context, academicYear *int) ([]models.StudentSummary, error) {
		require.NotNil(t, academicYear)
		assert.Equal(t, 2026, *academicYear)
		return []models.StudentSummary{{ID: "s1", Name: "A", IndexNumber: "IX-1"}}, nil
	}

	rec := env.do(t, http.MethodGet, "/students/unassigned?academic_year=2026", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUnassignedStudentsBadYear(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/students/unassigned?academic_year=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveAssignmentNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.assignment.remove = func(ctx context.Context, studentID string) error {
		return service.ErrAssignmentNotFound
	}

	rec := env.do(t, http.MethodDelete, "/students/3d9e6f0a-8a26-4bb2-8a0f-1db0a57c8e43/remove", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	env := newTestEnv(t)
	env.db.err = errors.New("connection refused")

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}
