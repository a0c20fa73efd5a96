package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campushub/slot-booking/internal/booking"
	"github.com/campushub/slot-booking/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeEngineError translates an engine error into an HTTP response. Every
// business-rule rejection maps to a stable error code; StorageUnavailable is
// the only kind worth a retry.
func writeEngineError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), booking.Kind(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, booking.ErrAppointmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrInvalidTeacher),
		errors.Is(err, booking.ErrInvalidStudent),
		errors.Is(err, booking.ErrInvalidTimeRange),
		errors.Is(err, booking.ErrInvalidSeats),
		errors.Is(err, booking.ErrInvalidNotes):
		return http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrOverlappingSlot),
		errors.Is(err, booking.ErrSlotFull),
		errors.Is(err, booking.ErrTooLateToBook),
		errors.Is(err, booking.ErrTooLateToCancel),
		errors.Is(err, booking.ErrConflictingAppointment),
		errors.Is(err, booking.ErrSlotHasBookings),
		errors.Is(err, booking.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
