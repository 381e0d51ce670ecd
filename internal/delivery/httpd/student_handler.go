package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolcore/admin-service/internal/models"
)

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	student, err := h.studentService.Create(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeCreated(w, "Student created successfully", student)
}

func (h *Handler) GetStudentByID(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	student, err := h.studentService.GetByID(r.Context(), studentID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Student retrieved", student)
}

func (h *Handler) GetStudentByIndexNumber(w http.ResponseWriter, r *http.Request) {
	indexNumber := chi.URLParam(r, "index_number")

	student, err := h.studentService.GetByIndexNumber(r.Context(), indexNumber)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Student retrieved", student)
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.GetAll(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Students retrieved", students)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	var req models.UpdateStudentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	student, err := h.studentService.Update(r.Context(), studentID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Student updated successfully", student)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	if err := h.studentService.SoftDelete(r.Context(), studentID); err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Student deleted successfully", nil)
}

// DeactivateStudents flips status to inactive for one or many students,
// typically at the end of a school year.
func (h *Handler) DeactivateStudents(w http.ResponseWriter, r *http.Request) {
	var req models.DeactivateStudentsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.studentService.Deactivate(r.Context(), req.StudentIDs)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Students deactivated successfully", map[string]interface{}{
		"deactivated_count": updated,
	})
}
