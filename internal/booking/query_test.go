package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSlots(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(t)

	t1 := newUser("teacher-1", RoleTeacher)
	t2 := newUser("teacher-2", RoleTeacher)
	alice := newUser("alice", RoleStudent)
	seedUsers(t, st, t1, t2, alice)

	morning := mustCreateSlot(t, e, t1.ID, slotStart, slotEnd, 1)
	afternoon := mustCreateSlot(t, e, t1.ID, slotStart.Add(4*time.Hour), slotEnd.Add(4*time.Hour), 2)
	other := mustCreateSlot(t, e, t2.ID, slotStart, slotEnd, 1)

	_, err := e.BookAppointment(ctx, morning.ID, alice.ID, "", longBefore)
	require.NoError(t, err)

	t.Run("no filter returns everything enriched", func(t *testing.T) {
		views, err := e.ListSlots(ctx, SlotFilter{})
		require.NoError(t, err)
		require.Len(t, views, 3)
		for _, v := range views {
			require.NotNil(t, v.Teacher)
			assert.Equal(t, v.TeacherID, v.Teacher.ID)
		}
	})

	t.Run("by teacher", func(t *testing.T) {
		views, err := e.ListSlots(ctx, SlotFilter{TeacherID: &t2.ID})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, other.ID, views[0].ID)
	})

	t.Run("only available", func(t *testing.T) {
		views, err := e.ListSlots(ctx, SlotFilter{TeacherID: &t1.ID, OnlyAvailable: true})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, afternoon.ID, views[0].ID)
	})

	t.Run("date range", func(t *testing.T) {
		from := slotStart.Add(-time.Hour)
		to := slotEnd.Add(time.Hour)
		views, err := e.ListSlots(ctx, SlotFilter{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			assert.NotEqual(t, afternoon.ID, v.ID)
		}
	})

	t.Run("open-ended from", func(t *testing.T) {
		from := slotEnd.Add(time.Hour)
		views, err := e.ListSlots(ctx, SlotFilter{From: &from})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, afternoon.ID, views[0].ID)
	})
}

func TestListAppointmentsForUser(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(t)

	teacher := newUser("teacher", RoleTeacher)
	otherTeacher := newUser("other-teacher", RoleTeacher)
	alice := newUser("alice", RoleStudent)
	bob := newUser("bob", RoleStudent)
	seedUsers(t, st, teacher, otherTeacher, alice, bob)

	slotA := mustCreateSlot(t, e, teacher.ID, slotStart, slotEnd, 2)
	slotB := mustCreateSlot(t, e, otherTeacher.ID, slotStart.Add(3*time.Hour), slotEnd.Add(3*time.Hour), 1)

	apptA, err := e.BookAppointment(ctx, slotA.ID, alice.ID, "thesis", longBefore)
	require.NoError(t, err)
	_, err = e.BookAppointment(ctx, slotA.ID, bob.ID, "", longBefore)
	require.NoError(t, err)
	_, err = e.BookAppointment(ctx, slotB.ID, alice.ID, "", longBefore)
	require.NoError(t, err)

	t.Run("student view", func(t *testing.T) {
		views, err := e.ListAppointmentsForUser(ctx, alice.ID, RoleStudent)
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			assert.Equal(t, alice.ID, v.StudentID)
			require.NotNil(t, v.Slot)
			require.NotNil(t, v.Student)
			require.NotNil(t, v.Teacher)
			assert.Equal(t, v.Slot.TeacherID, v.Teacher.ID)
		}
	})

	t.Run("teacher view covers only own slots", func(t *testing.T) {
		views, err := e.ListAppointmentsForUser(ctx, teacher.ID, RoleTeacher)
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			assert.Equal(t, slotA.ID, v.SlotID)
		}
	})

	t.Run("cancelled records stay visible", func(t *testing.T) {
		_, err := e.CancelAppointment(ctx, apptA.ID, alice.ID, longBefore)
		require.NoError(t, err)

		views, err := e.ListAppointmentsForUser(ctx, alice.ID, RoleStudent)
		require.NoError(t, err)
		require.Len(t, views, 2)

		statuses := map[AppointmentStatus]int{}
		for _, v := range views {
			statuses[v.Status]++
		}
		assert.Equal(t, 1, statuses[StatusCancelled])
		assert.Equal(t, 1, statuses[StatusBooked])
	})

	t.Run("deleted slot leaves nil slot on history", func(t *testing.T) {
		// slotA now has one cancelled and one booked appointment; cancel the
		// remaining booking so the slot can go away.
		teacherViews, err := e.ListAppointmentsForUser(ctx, teacher.ID, RoleTeacher)
		require.NoError(t, err)
		for _, v := range teacherViews {
			if v.Status == StatusBooked {
				_, err = e.CancelAppointment(ctx, v.ID, teacher.ID, longBefore)
				require.NoError(t, err)
			}
		}
		require.NoError(t, e.DeleteSlot(ctx, slotA.ID))

		views, err := e.ListAppointmentsForUser(ctx, alice.ID, RoleStudent)
		require.NoError(t, err)

		var sawOrphan bool
		for _, v := range views {
			if v.SlotID == slotA.ID {
				sawOrphan = true
				assert.Nil(t, v.Slot)
				assert.Nil(t, v.Teacher)
			}
		}
		assert.True(t, sawOrphan, "alice's history on the deleted slot must survive")
	})
}
