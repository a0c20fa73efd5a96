// Package booking implements the slot/appointment consistency engine:
// teachers publish bookable slots, students reserve seats, and both sides
// cancel under the booking (1h) and cancellation (24h) lead-time policies.
//
// Every operation takes an explicit "now"; the engine never reads the wall
// clock. Operations are serialized behind a single mutex, so each one runs a
// complete load-modify-save cycle against the store without interleaving.
// That serialization is what keeps the seat-count invariant intact under
// concurrent HTTP handlers.
package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campushub/slot-booking/internal/clock"
	"github.com/campushub/slot-booking/internal/metrics"
	"github.com/campushub/slot-booking/internal/store"
)

type Engine struct {
	mu  sync.Mutex
	st  store.Store
	log zerolog.Logger
}

func NewEngine(st store.Store, log zerolog.Logger) *Engine {
	return &Engine{st: st, log: log.With().Str("component", "booking-engine").Logger()}
}

// CreateSlotParams carries the fields a teacher supplies when publishing a
// slot.
type CreateSlotParams struct {
	TeacherID uuid.UUID
	Start     time.Time
	End       time.Time
	Location  string
	MaxSeats  int
}

// SlotUpdate carries optional field changes for UpdateSlot; nil means "leave
// unchanged".
type SlotUpdate struct {
	TeacherID *uuid.UUID
	Start     *time.Time
	End       *time.Time
	Location  *string
	MaxSeats  *int
}

// CreateSlot publishes a new slot for a teacher. The slot must not overlap
// any other slot owned by the same teacher; slots of different teachers may
// overlap freely.
func (e *Engine) CreateSlot(ctx context.Context, p CreateSlotParams, now time.Time) (*Slot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	users, err := loadUsers(ctx, e.st)
	if err != nil {
		return nil, err
	}
	teacher := findUser(users, p.TeacherID)
	if teacher == nil || teacher.Role != RoleTeacher {
		return nil, e.reject(ErrInvalidTeacher)
	}
	if !p.End.After(p.Start) {
		return nil, e.reject(ErrInvalidTimeRange)
	}
	if p.MaxSeats < 1 {
		return nil, e.reject(ErrInvalidSeats)
	}

	slots, err := loadSlots(ctx, e.st)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].TeacherID != p.TeacherID {
			continue
		}
		if clock.RangesOverlap(slots[i].Start, slots[i].End, p.Start, p.End) {
			return nil, e.reject(ErrOverlappingSlot)
		}
	}

	slot := Slot{
		ID:             uuid.New(),
		TeacherID:      p.TeacherID,
		Start:          p.Start,
		End:            p.End,
		Location:       p.Location,
		MaxSeats:       p.MaxSeats,
		AvailableSeats: p.MaxSeats,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	slots = append(slots, slot)

	if err := saveSlots(ctx, e.st, slots); err != nil {
		return nil, err
	}

	metrics.IncSlotCreated()
	e.log.Info().
		Str("slot_id", slot.ID.String()).
		Str("teacher_id", slot.TeacherID.String()).
		Time("start", slot.Start).
		Int("max_seats", slot.MaxSeats).
		Msg("slot created")

	return &slot, nil
}

// UpdateSlot applies field changes to an existing slot. Once any appointment
// is BOOKED against the slot, its owner and time range are frozen; location
// and seat capacity may still change. Capacity changes recompute the
// available count from the booked total. Unlike CreateSlot, no overlap check
// runs here.
func (e *Engine) UpdateSlot(ctx context.Context, slotID uuid.UUID, upd SlotUpdate, now time.Time) (*Slot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slots, err := loadSlots(ctx, e.st)
	if err != nil {
		return nil, err
	}
	slot := findSlot(slots, slotID)
	if slot == nil {
		return nil, e.reject(ErrSlotNotFound)
	}

	appts, err := loadAppointments(ctx, e.st)
	if err != nil {
		return nil, err
	}
	booked := countBooked(appts, slotID)

	frozen := upd.Start != nil || upd.End != nil || upd.TeacherID != nil
	if frozen && booked > 0 {
		return nil, e.reject(ErrSlotHasBookings)
	}

	if upd.TeacherID != nil && *upd.TeacherID != slot.TeacherID {
		users, err := loadUsers(ctx, e.st)
		if err != nil {
			return nil, err
		}
		teacher := findUser(users, *upd.TeacherID)
		if teacher == nil || teacher.Role != RoleTeacher {
			return nil, e.reject(ErrInvalidTeacher)
		}
		slot.TeacherID = *upd.TeacherID
	}

	start, end := slot.Start, slot.End
	if upd.Start != nil {
		start = *upd.Start
	}
	if upd.End != nil {
		end = *upd.End
	}
	if !end.After(start) {
		return nil, e.reject(ErrInvalidTimeRange)
	}
	slot.Start, slot.End = start, end

	if upd.Location != nil {
		slot.Location = *upd.Location
	}
	if upd.MaxSeats != nil {
		if *upd.MaxSeats < 1 {
			return nil, e.reject(ErrInvalidSeats)
		}
		slot.MaxSeats = *upd.MaxSeats
		// Shrinking below the booked count is not guarded; the available
		// count clamps at zero so it stays in range.
		slot.AvailableSeats = slot.MaxSeats - booked
		if slot.AvailableSeats < 0 {
			slot.AvailableSeats = 0
		}
	}
	slot.UpdatedAt = now

	if err := saveSlots(ctx, e.st, slots); err != nil {
		return nil, err
	}

	e.log.Info().Str("slot_id", slot.ID.String()).Msg("slot updated")

	out := *slot
	return &out, nil
}

// DeleteSlot removes a slot that has no BOOKED appointments. Cancelled and
// attended appointments keep referencing the deleted slot's id as history.
func (e *Engine) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	slots, err := loadSlots(ctx, e.st)
	if err != nil {
		return err
	}
	idx := -1
	for i := range slots {
		if slots[i].ID == slotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return e.reject(ErrSlotNotFound)
	}

	appts, err := loadAppointments(ctx, e.st)
	if err != nil {
		return err
	}
	if countBooked(appts, slotID) > 0 {
		return e.reject(ErrSlotHasBookings)
	}

	slots = append(slots[:idx], slots[idx+1:]...)
	if err := saveSlots(ctx, e.st, slots); err != nil {
		return err
	}

	metrics.IncSlotDeleted()
	e.log.Info().Str("slot_id", slotID.String()).Msg("slot deleted")

	return nil
}

// BookAppointment reserves one seat on a slot for a student. Validation runs
// in a fixed order; the first failing rule wins. The appointment insert and
// the seat decrement commit inside the same critical section, so no reader
// observes one without the other.
func (e *Engine) BookAppointment(ctx context.Context, slotID, studentID uuid.UUID, notes string, now time.Time) (*Appointment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(notes) > MaxNotesLen {
		return nil, e.reject(ErrInvalidNotes)
	}

	users, err := loadUsers(ctx, e.st)
	if err != nil {
		return nil, err
	}
	student := findUser(users, studentID)
	if student == nil || student.Role != RoleStudent {
		return nil, e.reject(ErrInvalidStudent)
	}

	slots, err := loadSlots(ctx, e.st)
	if err != nil {
		return nil, err
	}
	slot := findSlot(slots, slotID)
	if slot == nil {
		return nil, e.reject(ErrSlotNotFound)
	}
	if slot.AvailableSeats <= 0 {
		return nil, e.reject(ErrSlotFull)
	}
	if !clock.IsBookingAllowed(slot.Start, now) {
		return nil, e.reject(ErrTooLateToBook)
	}

	appts, err := loadAppointments(ctx, e.st)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].StudentID != studentID || appts[i].Status != StatusBooked {
			continue
		}
		other := findSlot(slots, appts[i].SlotID)
		if other == nil {
			continue
		}
		if clock.RangesOverlap(other.Start, other.End, slot.Start, slot.End) {
			return nil, e.reject(ErrConflictingAppointment)
		}
	}

	appt := Appointment{
		ID:        uuid.New(),
		SlotID:    slotID,
		StudentID: studentID,
		Status:    StatusBooked,
		Notes:     notes,
		CreatedAt: now,
	}
	appts = append(appts, appt)
	slot.AvailableSeats--

	if err := saveAppointments(ctx, e.st, appts); err != nil {
		return nil, err
	}
	if err := saveSlots(ctx, e.st, slots); err != nil {
		return nil, err
	}

	metrics.IncAppointmentBooked()
	e.log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("slot_id", slotID.String()).
		Str("student_id", studentID.String()).
		Int("seats_left", slot.AvailableSeats).
		Msg("appointment booked")

	return &appt, nil
}

// CancelAppointment moves a BOOKED appointment to CANCELLED and releases its
// seat. The acting user must be the booking student or the owning teacher.
// Students are bound by the 24h cancellation window; the owning teacher
// bypasses it.
func (e *Engine) CancelAppointment(ctx context.Context, appointmentID, actingUserID uuid.UUID, now time.Time) (*Appointment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	appts, err := loadAppointments(ctx, e.st)
	if err != nil {
		return nil, err
	}
	appt := findAppointment(appts, appointmentID)
	if appt == nil {
		return nil, e.reject(ErrAppointmentNotFound)
	}

	slots, err := loadSlots(ctx, e.st)
	if err != nil {
		return nil, err
	}
	// The slot can only be absent for terminal appointments; deletion is
	// blocked while a BOOKED appointment exists.
	slot := findSlot(slots, appt.SlotID)

	isStudent := actingUserID == appt.StudentID
	isOwner := slot != nil && actingUserID == slot.TeacherID
	if !isStudent && !isOwner {
		return nil, e.reject(ErrNotAuthorized)
	}
	if appt.Status != StatusBooked {
		return nil, e.reject(ErrInvalidStateTransition)
	}
	if slot == nil {
		return nil, e.reject(ErrSlotNotFound)
	}
	if isStudent && !isOwner && !clock.IsCancellationAllowed(slot.Start, now) {
		return nil, e.reject(ErrTooLateToCancel)
	}

	appt.Status = StatusCancelled
	cancelledAt := now
	appt.CancelledAt = &cancelledAt
	if slot.AvailableSeats < slot.MaxSeats {
		slot.AvailableSeats++
	}

	if err := saveAppointments(ctx, e.st, appts); err != nil {
		return nil, err
	}
	if err := saveSlots(ctx, e.st, slots); err != nil {
		return nil, err
	}

	actor := "student"
	if isOwner {
		actor = "teacher"
	}
	metrics.IncAppointmentCancelled(actor)
	e.log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("acting_user_id", actingUserID.String()).
		Str("actor", actor).
		Msg("appointment cancelled")

	out := *appt
	return &out, nil
}

// MarkAttended records that a BOOKED appointment took place. The seat stays
// consumed; attendance is a terminal outcome of the booking, not a release.
func (e *Engine) MarkAttended(ctx context.Context, appointmentID uuid.UUID) (*Appointment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	appts, err := loadAppointments(ctx, e.st)
	if err != nil {
		return nil, err
	}
	appt := findAppointment(appts, appointmentID)
	if appt == nil {
		return nil, e.reject(ErrAppointmentNotFound)
	}
	if appt.Status != StatusBooked {
		return nil, e.reject(ErrInvalidStateTransition)
	}

	appt.Status = StatusAttended

	if err := saveAppointments(ctx, e.st, appts); err != nil {
		return nil, err
	}

	metrics.IncAppointmentAttended()
	e.log.Info().Str("appointment_id", appt.ID.String()).Msg("appointment attended")

	out := *appt
	return &out, nil
}

func (e *Engine) reject(err error) error {
	metrics.IncOperationRejected(Kind(err))
	return err
}

func findUser(users []User, id uuid.UUID) *User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

func findSlot(slots []Slot, id uuid.UUID) *Slot {
	for i := range slots {
		if slots[i].ID == id {
			return &slots[i]
		}
	}
	return nil
}

func findAppointment(appts []Appointment, id uuid.UUID) *Appointment {
	for i := range appts {
		if appts[i].ID == id {
			return &appts[i]
		}
	}
	return nil
}

func countBooked(appts []Appointment, slotID uuid.UUID) int {
	n := 0
	for i := range appts {
		if appts[i].SlotID == slotID && appts[i].Status == StatusBooked {
			n++
		}
	}
	return n
}
