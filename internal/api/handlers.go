package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campushub/slot-booking/internal/booking"
)

// Handler exposes the booking engine over HTTP. The current time is injected
// through the now func so tests can freeze it; the engine itself never reads
// the clock.
type Handler struct {
	engine *booking.Engine
	now    func() time.Time
}

func NewHandler(engine *booking.Engine, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{engine: engine, now: now}
}

func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_teacher_id", "teacher_id must be a valid UUID")
		return
	}

	slot, err := h.engine.CreateSlot(r.Context(), booking.CreateSlotParams{
		TeacherID: teacherID,
		Start:     req.Start,
		End:       req.End,
		Location:  req.Location,
		MaxSeats:  req.MaxSeats,
	}, h.now())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, slot)
}

func (h *Handler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := parseIDParam(w, r, "invalid_slot_id")
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	upd := booking.SlotUpdate{
		Start:    req.Start,
		End:      req.End,
		Location: req.Location,
		MaxSeats: req.MaxSeats,
	}
	if req.TeacherID != nil {
		teacherID, err := uuid.Parse(*req.TeacherID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_teacher_id", "teacher_id must be a valid UUID")
			return
		}
		upd.TeacherID = &teacherID
	}

	slot, err := h.engine.UpdateSlot(r.Context(), slotID, upd, h.now())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, slot)
}

func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := parseIDParam(w, r, "invalid_slot_id")
	if !ok {
		return
	}

	if err := h.engine.DeleteSlot(r.Context(), slotID); err != nil {
		writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	var f booking.SlotFilter

	q := r.URL.Query()
	if v := q.Get("teacher_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_teacher_id", "teacher_id must be a valid UUID")
			return
		}
		f.TeacherID = &id
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_from", "from must be RFC3339")
			return
		}
		f.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_to", "to must be RFC3339")
			return
		}
		f.To = &ts
	}
	f.OnlyAvailable = q.Get("available") == "true"

	views, err := h.engine.ListSlots(r.Context(), f)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_slot_id", "slot_id must be a valid UUID")
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_student_id", "student_id must be a valid UUID")
		return
	}

	appt, err := h.engine.BookAppointment(r.Context(), slotID, studentID, req.Notes, h.now())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	apptID, ok := parseIDParam(w, r, "invalid_appointment_id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	actingUserID, err := uuid.Parse(req.ActingUserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_acting_user_id", "acting_user_id must be a valid UUID")
		return
	}

	appt, err := h.engine.CancelAppointment(r.Context(), apptID, actingUserID, h.now())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	apptID, ok := parseIDParam(w, r, "invalid_appointment_id")
	if !ok {
		return
	}

	appt, err := h.engine.MarkAttended(r.Context(), apptID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) ListUserAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "invalid_user_id")
	if !ok {
		return
	}

	role := booking.Role(r.URL.Query().Get("role"))
	if role != booking.RoleStudent && role != booking.RoleTeacher {
		writeError(w, http.StatusBadRequest, "invalid_role", "role must be STUDENT or TEACHER")
		return
	}

	views, err := h.engine.ListAppointmentsForUser(r.Context(), userID, role)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func parseIDParam(w http.ResponseWriter, r *http.Request, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, code, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
