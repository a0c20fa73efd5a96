package api

import "time"

type CreateSlotRequest struct {
	TeacherID string    `json:"teacher_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Location  string    `json:"location"`
	MaxSeats  int       `json:"max_seats"`
}

type UpdateSlotRequest struct {
	TeacherID *string    `json:"teacher_id,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	Location  *string    `json:"location,omitempty"`
	MaxSeats  *int       `json:"max_seats,omitempty"`
}

type BookAppointmentRequest struct {
	SlotID    string `json:"slot_id"`
	StudentID string `json:"student_id"`
	Notes     string `json:"notes,omitempty"`
}

type CancelAppointmentRequest struct {
	ActingUserID string `json:"acting_user_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
