package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campushub/slot-booking/internal/store"
)

// Typed load/save helpers over the persistence adapter. An absent collection
// reads as an empty list so first-run bootstrap needs no special casing.

func loadUsers(ctx context.Context, st store.Store) ([]User, error) {
	var users []User
	if err := loadCollection(ctx, st, store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func loadSlots(ctx context.Context, st store.Store) ([]Slot, error) {
	var slots []Slot
	if err := loadCollection(ctx, st, store.CollectionSlots, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func loadAppointments(ctx context.Context, st store.Store) ([]Appointment, error) {
	var appts []Appointment
	if err := loadCollection(ctx, st, store.CollectionAppointments, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func saveSlots(ctx context.Context, st store.Store, slots []Slot) error {
	return saveCollection(ctx, st, store.CollectionSlots, slots)
}

func saveAppointments(ctx context.Context, st store.Store, appts []Appointment) error {
	return saveCollection(ctx, st, store.CollectionAppointments, appts)
}

// SaveUsers writes the users collection. The engine itself never calls this;
// it exists for the identity collaborator and the seed command.
func SaveUsers(ctx context.Context, st store.Store, users []User) error {
	return saveCollection(ctx, st, store.CollectionUsers, users)
}

func loadCollection(ctx context.Context, st store.Store, name string, dest any) error {
	data, err := st.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func saveCollection(ctx context.Context, st store.Store, name string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := st.Save(ctx, name, data); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
