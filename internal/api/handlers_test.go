package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/slot-booking/internal/booking"
	"github.com/campushub/slot-booking/internal/store"
)

var (
	testStart = time.Date(2025, 11, 25, 10, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2025, 11, 25, 11, 0, 0, 0, time.UTC)
	frozenNow = testStart.Add(-48 * time.Hour)
)

type fixture struct {
	srv     *httptest.Server
	teacher booking.User
	alice   booking.User
	bob     booking.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewMemory()
	engine := booking.NewEngine(st, zerolog.Nop())

	teacher := booking.User{ID: uuid.New(), Name: "Dr. Smith", Email: "smith@example.edu", Role: booking.RoleTeacher}
	alice := booking.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.edu", Role: booking.RoleStudent}
	bob := booking.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.edu", Role: booking.RoleStudent}
	require.NoError(t, booking.SaveUsers(context.Background(), st, []booking.User{teacher, alice, bob}))

	router := NewRouter(RouterConfig{
		Engine:  engine,
		Store:   st,
		Logger:  zerolog.Nop(),
		Env:     "test",
		Version: "test",
		Now:     func() time.Time { return frozenNow },
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, teacher: teacher, alice: alice, bob: bob}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (f *fixture) createSlot(t *testing.T, seats int) booking.Slot {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/slots", CreateSlotRequest{
		TeacherID: f.teacher.ID.String(),
		Start:     testStart,
		End:       testEnd,
		Location:  "Room 101",
		MaxSeats:  seats,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[booking.Slot](t, resp)
}

func TestSlotLifecycleOverHTTP(t *testing.T) {
	f := newFixture(t)

	slot := f.createSlot(t, 2)
	assert.Equal(t, 2, slot.AvailableSeats)

	// Overlapping slot for the same teacher is rejected with a stable code.
	resp := f.do(t, http.MethodPost, "/slots", CreateSlotRequest{
		TeacherID: f.teacher.ID.String(),
		Start:     testStart.Add(30 * time.Minute),
		End:       testEnd.Add(30 * time.Minute),
		MaxSeats:  1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "overlapping_slot", errResp.Error)

	// Patch location.
	loc := "Room 202"
	resp = f.do(t, http.MethodPatch, "/slots/"+slot.ID.String(), UpdateSlotRequest{Location: &loc})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[booking.Slot](t, resp)
	assert.Equal(t, "Room 202", updated.Location)

	// Delete.
	resp = f.do(t, http.MethodDelete, "/slots/"+slot.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/slots/"+slot.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBookingFlowOverHTTP(t *testing.T) {
	f := newFixture(t)
	slot := f.createSlot(t, 1)

	resp := f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		SlotID:    slot.ID.String(),
		StudentID: f.alice.ID.String(),
		Notes:     "project review",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	appt := decode[booking.Appointment](t, resp)
	assert.Equal(t, booking.StatusBooked, appt.Status)

	// Slot is now full.
	resp = f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		SlotID:    slot.ID.String(),
		StudentID: f.bob.ID.String(),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "slot_full", errResp.Error)

	// Available filter hides it.
	resp = f.do(t, http.MethodGet, "/slots?available=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	views := decode[[]booking.SlotView](t, resp)
	assert.Empty(t, views)

	// Bob cannot cancel Alice's appointment.
	resp = f.do(t, http.MethodPost, fmt.Sprintf("/appointments/%s/cancel", appt.ID), CancelAppointmentRequest{
		ActingUserID: f.bob.ID.String(),
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Alice cancels well before the window.
	resp = f.do(t, http.MethodPost, fmt.Sprintf("/appointments/%s/cancel", appt.ID), CancelAppointmentRequest{
		ActingUserID: f.alice.ID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cancelled := decode[booking.Appointment](t, resp)
	assert.Equal(t, booking.StatusCancelled, cancelled.Status)

	// Cancelling again is a state-machine violation.
	resp = f.do(t, http.MethodPost, fmt.Sprintf("/appointments/%s/cancel", appt.ID), CancelAppointmentRequest{
		ActingUserID: f.alice.ID.String(),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp = decode[ErrorResponse](t, resp)
	assert.Equal(t, "invalid_state_transition", errResp.Error)
}

func TestAttendAndUserListings(t *testing.T) {
	f := newFixture(t)
	slot := f.createSlot(t, 2)

	resp := f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		SlotID:    slot.ID.String(),
		StudentID: f.alice.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	appt := decode[booking.Appointment](t, resp)

	resp = f.do(t, http.MethodPost, fmt.Sprintf("/appointments/%s/attend", appt.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	attended := decode[booking.Appointment](t, resp)
	assert.Equal(t, booking.StatusAttended, attended.Status)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/users/%s/appointments?role=STUDENT", f.alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	studentViews := decode[[]booking.AppointmentView](t, resp)
	require.Len(t, studentViews, 1)
	require.NotNil(t, studentViews[0].Slot)
	assert.Equal(t, slot.ID, studentViews[0].Slot.ID)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/users/%s/appointments?role=TEACHER", f.teacher.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	teacherViews := decode[[]booking.AppointmentView](t, resp)
	require.Len(t, teacherViews, 1)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/users/%s/appointments?role=ADMIN", f.teacher.ID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestBadInputOverHTTP(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/slots", map[string]any{"teacher_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPatch, "/slots/not-a-uuid", UpdateSlotRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		SlotID:    uuid.New().String(),
		StudentID: f.alice.ID.String(),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "slot_not_found", errResp.Error)
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	live := decode[LivenessResponse](t, resp)
	assert.Equal(t, "ok", live.Status)

	resp = f.do(t, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ready := decode[ReadinessResponse](t, resp)
	assert.Equal(t, "ok", ready.Status)
	assert.Equal(t, "ok", ready.Dependencies["store"])
}
