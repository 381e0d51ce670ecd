package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/service"
	"github.com/schoolcore/admin-service/internal/worker"
)

type Handler struct {
	authService       service.AuthService
	adminService      service.AdminService
	studentService    service.StudentService
	gradeService      service.GradeService
	classService      service.ClassService
	assignmentService service.AssignmentService
	attendanceService service.AttendanceService
	pool              *worker.Pool
	db                DBPinger
	validate          *validator.Validate
	logger            zerolog.Logger
}

// DBPinger checks database connectivity for the health endpoint.
type DBPinger interface {
	Ping(ctx context.Context) error
}

func NewHandler(
	authService service.AuthService,
	adminService service.AdminService,
	studentService service.StudentService,
	gradeService service.GradeService,
	classService service.ClassService,
	assignmentService service.AssignmentService,
	attendanceService service.AttendanceService,
	pool *worker.Pool,
	db DBPinger,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		adminService:      adminService,
		studentService:    studentService,
		gradeService:      gradeService,
		classService:      classService,
		assignmentService: assignmentService,
		attendanceService: attendanceService,
		pool:              pool,
		db:                db,
		validate:          validator.New(),
		logger:            logger,
	}
}

// RegisterRoutes mounts all endpoints. Everything behind authGate requires a
// bearer token; the root, health, metrics and login endpoints stay open.
func (h *Handler) RegisterRoutes(router chi.Router, authGate func(http.Handler) http.Handler) {
	router.Get("/", h.Welcome)
	router.Get("/health", h.HealthCheck)
	router.Handle("/metrics", promhttp.Handler())
	router.Post("/login", h.Login)

	router.Group(func(r chi.Router) {
		r.Use(authGate)

		r.Post("/logout", h.Logout)

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/", h.MarkAttendance)
			r.Post("/mark-absent", h.TriggerAbsenceSweep)
			r.Get("/student/{id}", h.GetAttendanceByStudent)
		})

		r.Route("/students", func(r chi.Router) {
			r.Post("/", h.CreateStudent)
			r.Get("/", h.GetAllStudents)
			r.Post("/assign", h.AssignStudents)
			r.Get("/unassigned", h.GetUnassignedStudents)
			r.Put("/assignments/{id}", h.UpdateAssignment)
			r.Post("/deactivate", h.DeactivateStudents)
			r.Get("/index/{index_number}", h.GetStudentByIndexNumber)
			r.Get("/{id}", h.GetStudentByID)
			r.Put("/{id}", h.UpdateStudent)
			r.Delete("/{id}", h.DeleteStudent)
			r.Delete("/{id}/remove", h.RemoveAssignment)
		})

		r.Route("/grades", func(r chi.Router) {
			r.Post("/", h.CreateGrade)
			r.Get("/", h.GetAllGrades)
			r.Get("/{id}", h.GetGradeByID)
			r.Put("/{id}", h.UpdateGrade)
			r.Delete("/{id}", h.DeleteGrade)
		})

		r.Route("/classes", func(r chi.Router) {
			r.Post("/", h.CreateClass)
			r.Get("/", h.GetAllClasses)
			r.Get("/grade/{grade_id}", h.GetClassesByGrade)
			r.Get("/{id}", h.GetClassByID)
			r.Put("/{id}", h.UpdateClass)
			r.Delete("/{id}", h.DeleteClass)
		})

		r.Route("/admins", func(r chi.Router) {
			r.Post("/", h.CreateAdmin)
			r.Get("/", h.GetAllAdmins)
			r.Get("/{id}", h.GetAdminByID)
			r.Put("/{id}", h.UpdateAdmin)
			r.Delete("/{id}", h.DeleteAdmin)
		})
	})
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, "Welcome to the school admin service", nil)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Health check failed: database unreachable")
		writeError(w, http.StatusServiceUnavailable, "Database unreachable")
		return
	}
	writeSuccess(w, "healthy", map[string]interface{}{
		"service":   "admin-service",
		"timestamp": time.Now().UTC(),
	})
}

// decodeAndValidate decodes the JSON body into dst and runs its validate tags.
// A false return means the error response is already written.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "Validation failed on field '" + verrs[0].Field() + "' (" + verrs[0].Tag() + ")"
	}
	return "Validation failed"
}

// handleError maps service sentinel errors to HTTP codes. Anything not
// recognized is a 500 and gets logged with its cause.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrGradeNotFound),
		errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrAdminNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrStudentsInactive),
		errors.Is(err, service.ErrNoAttendanceRecords),
		errors.Is(err, service.ErrNoStudents):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateAttendance):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrIndexNumberTaken),
		errors.Is(err, service.ErrGradeLevelTaken),
		errors.Is(err, service.ErrClassTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyAssigned):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, true, message, data)
}

func writeCreated(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, true, message, data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, false, message, nil)
}
