package httpd

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schoolcore/admin-service/internal/models"
)

const sweepTaskTimeout = 4 * time.Minute

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req models.MarkAttendanceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.attendanceService.MarkPresent(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeCreated(w, "Attendance marked successfully", record)
}

// TriggerAbsenceSweep runs the absence sweep on the worker pool and acks
// immediately. The caller cannot observe the sweep's outcome; failures are
// logged from the task.
func (h *Handler) TriggerAbsenceSweep(w http.ResponseWriter, r *http.Request) {
	h.pool.Submit("absence-sweep", func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTaskTimeout)
		defer cancel()

		summary, err := h.attendanceService.SweepAbsences(ctx, "")
		if err != nil {
			h.logger.Error().Err(err).Msg("On-demand absence sweep failed")
			return
		}

		h.logger.Info().
			Str("date", summary.Date).
			Int("marked", summary.Marked).
			Int("skipped", summary.Skipped).
			Msg("On-demand absence sweep completed")
	})

	writeSuccess(w, "Absence marking started", nil)
}

func (h *Handler) GetAttendanceByStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	records, err := h.attendanceService.GetByStudent(r.Context(), studentID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, "Attendance records retrieved", records)
}
