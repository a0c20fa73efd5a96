package booking

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's fixed role. A user is either a student or a teacher,
// never both.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "BOOKED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusAttended  AppointmentStatus = "ATTENDED"
)

// MaxNotesLen bounds the free-text notes a student may attach to a booking.
const MaxNotesLen = 500

// User is read-only reference data owned by the identity collaborator; the
// engine never creates or mutates users.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Slot is a teacher-published time window with finite seat capacity. The
// range is half-open: [Start, End).
type Slot struct {
	ID             uuid.UUID `json:"id"`
	TeacherID      uuid.UUID `json:"teacher_id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Location       string    `json:"location"`
	MaxSeats       int       `json:"max_seats"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Appointment is one student's reservation against a slot. Records are never
// deleted; cancellation is a status change preserving history.
type Appointment struct {
	ID          uuid.UUID         `json:"id"`
	SlotID      uuid.UUID         `json:"slot_id"`
	StudentID   uuid.UUID         `json:"student_id"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
}

// SlotView is a slot enriched with its teacher's public profile.
type SlotView struct {
	Slot
	Teacher *User `json:"teacher,omitempty"`
}

// AppointmentView is an appointment enriched for display. Slot may be nil on
// terminal appointments whose slot was deleted afterwards.
type AppointmentView struct {
	Appointment
	Slot    *Slot `json:"slot,omitempty"`
	Student *User `json:"student,omitempty"`
	Teacher *User `json:"teacher,omitempty"`
}
