package httpd

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/schoolcore/admin-service/internal/models"
)

// AssignStudents assigns one or many students to a class for an academic
// year. Students already assigned for that year are skipped, not failed.
func (h *Handler) AssignStudents(w http.ResponseWriter, r *http.Request) {
	var req models.AssignStudentsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.assignmentService.Assign(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Students assigned successfully", result)
}

// GetUnassignedStudents lists active students with no class assignment. An
// optional academic_year query param scopes the check to one year.
func (h *Handler) GetUnassignedStudents(w http.ResponseWriter, r *http.Request) {
	var academicYear *int
	if raw := r.URL.Query().Get("academic_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "academic_year must be an integer")
			return
		}
		academicYear = &year
	}

	students, err := h.assignmentService.ListUnassigned(r.Context(), academicYear)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Unassigned students retrieved", students)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")

	var req models.UpdateAssignmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.assignmentService.Update(r.Context(), assignmentID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Assignment updated successfully", assignment)
}

// RemoveAssignment hard-deletes the student's class assignment.
func (h *Handler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	if err := h.assignmentService.Remove(r.Context(), studentID); err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Student removed from class successfully", nil)
}
