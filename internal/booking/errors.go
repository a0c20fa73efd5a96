package booking

import (
	"errors"

	"github.com/campushub/slot-booking/internal/store"
)

// Sentinel errors for every business-rule rejection. None of them is
// transient; callers must not retry.
var (
	ErrInvalidTeacher         = errors.New("teacher not found or not a teacher")
	ErrInvalidStudent         = errors.New("student not found or not a student")
	ErrInvalidTimeRange       = errors.New("slot end must be after start")
	ErrInvalidSeats           = errors.New("max seats must be at least 1")
	ErrInvalidNotes           = errors.New("notes exceed maximum length")
	ErrOverlappingSlot        = errors.New("slot overlaps another slot of the same teacher")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrSlotFull               = errors.New("slot has no available seats")
	ErrTooLateToBook          = errors.New("too late to book this slot")
	ErrTooLateToCancel        = errors.New("too late to cancel this appointment")
	ErrConflictingAppointment = errors.New("student already has an overlapping appointment")
	ErrSlotHasBookings        = errors.New("slot has booked appointments")
	ErrNotAuthorized          = errors.New("not authorized for this appointment")
	ErrInvalidStateTransition = errors.New("appointment is not in a cancellable state")
)

// Kind returns a stable machine-readable label for an engine error, used for
// metrics and the API error payload.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTeacher):
		return "invalid_teacher"
	case errors.Is(err, ErrInvalidStudent):
		return "invalid_student"
	case errors.Is(err, ErrInvalidTimeRange):
		return "invalid_time_range"
	case errors.Is(err, ErrInvalidSeats):
		return "invalid_seats"
	case errors.Is(err, ErrInvalidNotes):
		return "invalid_notes"
	case errors.Is(err, ErrOverlappingSlot):
		return "overlapping_slot"
	case errors.Is(err, ErrSlotNotFound):
		return "slot_not_found"
	case errors.Is(err, ErrAppointmentNotFound):
		return "appointment_not_found"
	case errors.Is(err, ErrSlotFull):
		return "slot_full"
	case errors.Is(err, ErrTooLateToBook):
		return "too_late_to_book"
	case errors.Is(err, ErrTooLateToCancel):
		return "too_late_to_cancel"
	case errors.Is(err, ErrConflictingAppointment):
		return "conflicting_appointment"
	case errors.Is(err, ErrSlotHasBookings):
		return "slot_has_bookings"
	case errors.Is(err, ErrNotAuthorized):
		return "not_authorized"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, store.ErrUnavailable):
		return "storage_unavailable"
	default:
		return "internal_error"
	}
}
