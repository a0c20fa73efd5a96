package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/slot-booking/internal/clock"
)

// SlotFilter narrows ListSlots. Nil fields are ignored. From/To select slots
// whose [Start, End) range intersects [From, To).
type SlotFilter struct {
	TeacherID     *uuid.UUID
	From          *time.Time
	To            *time.Time
	OnlyAvailable bool
}

// ListSlots returns slots matching the filter, each enriched with the owning
// teacher's profile. Read-only; derives no new state.
func (e *Engine) ListSlots(ctx context.Context, f SlotFilter) ([]SlotView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slots, err := loadSlots(ctx, e.st)
	if err != nil {
		return nil, err
	}
	users, err := loadUsers(ctx, e.st)
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, 0, len(slots))
	for i := range slots {
		s := slots[i]
		if f.TeacherID != nil && s.TeacherID != *f.TeacherID {
			continue
		}
		if f.From != nil && f.To != nil {
			if !clock.RangesOverlap(s.Start, s.End, *f.From, *f.To) {
				continue
			}
		} else if f.From != nil && !s.End.After(*f.From) {
			continue
		} else if f.To != nil && !s.Start.Before(*f.To) {
			continue
		}
		if f.OnlyAvailable && s.AvailableSeats <= 0 {
			continue
		}
		views = append(views, SlotView{Slot: s, Teacher: findUser(users, s.TeacherID)})
	}
	return views, nil
}

// ListAppointmentsForUser returns every appointment visible to a user: for a
// student, those they booked; for a teacher, those on the teacher's slots.
// All statuses are included; callers group by status as needed. A terminal
// appointment whose slot was deleted carries a nil Slot.
func (e *Engine) ListAppointmentsForUser(ctx context.Context, userID uuid.UUID, role Role) ([]AppointmentView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	appts, err := loadAppointments(ctx, e.st)
	if err != nil {
		return nil, err
	}
	slots, err := loadSlots(ctx, e.st)
	if err != nil {
		return nil, err
	}
	users, err := loadUsers(ctx, e.st)
	if err != nil {
		return nil, err
	}

	views := make([]AppointmentView, 0)
	for i := range appts {
		a := appts[i]
		slot := findSlot(slots, a.SlotID)

		switch role {
		case RoleStudent:
			if a.StudentID != userID {
				continue
			}
		case RoleTeacher:
			if slot == nil || slot.TeacherID != userID {
				continue
			}
		default:
			continue
		}

		view := AppointmentView{
			Appointment: a,
			Student:     findUser(users, a.StudentID),
		}
		if slot != nil {
			s := *slot
			view.Slot = &s
			view.Teacher = findUser(users, s.TeacherID)
		}
		views = append(views, view)
	}
	return views, nil
}
