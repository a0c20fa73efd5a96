// Command seed bootstraps demo data: a handful of teachers, a class of
// students and a week of published slots, written through the configured
// store. Run once before demoing the API.
package main

import (
	"context"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campushub/slot-booking/internal/booking"
	"github.com/campushub/slot-booking/internal/config"
	"github.com/campushub/slot-booking/internal/store"
)

const (
	teacherCount = 5
	studentCount = 40
	slotsPerDay  = 4
	seedDays     = 5
)

var locations = []string{
	"Room 101",
	"Room 202",
	"Lab 3",
	"Library study room B",
	"Main hall office 12",
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Str("service", "seed").Logger()
	logger.Info().Msg("seed starting")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, closeStore, err := store.Open(ctx, store.Options{
		Backend:       cfg.StorageBackend,
		DataDir:       cfg.DataDir,
		PostgresDSN:   cfg.PostgresDSN,
		RedisAddr:     cfg.RedisAddr,
		RedisUsername: cfg.RedisUsername,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("storage backend error")
	}
	defer closeStore()

	gofakeit.Seed(time.Now().UnixNano())
	now := time.Now().UTC()

	teachers := seedUsers(booking.RoleTeacher, teacherCount, now)
	students := seedUsers(booking.RoleStudent, studentCount, now)

	users := append(append([]booking.User{}, teachers...), students...)
	if err := booking.SaveUsers(ctx, st, users); err != nil {
		logger.Fatal().Err(err).Msg("seed users")
	}
	logger.Info().Int("teachers", len(teachers)).Int("students", len(students)).Msg("users seeded")

	engine := booking.NewEngine(st, logger)
	slots := 0
	for _, teacher := range teachers {
		for day := 1; day <= seedDays; day++ {
			base := now.AddDate(0, 0, day).Truncate(24 * time.Hour).Add(9 * time.Hour)
			for i := 0; i < slotsPerDay; i++ {
				start := base.Add(time.Duration(i) * 90 * time.Minute)
				_, err := engine.CreateSlot(ctx, booking.CreateSlotParams{
					TeacherID: teacher.ID,
					Start:     start,
					End:       start.Add(time.Hour),
					Location:  locations[gofakeit.Number(0, len(locations)-1)],
					MaxSeats:  gofakeit.Number(1, 3),
				}, now)
				if err != nil {
					logger.Fatal().Err(err).Msg("seed slot")
				}
				slots++
			}
		}
	}

	logger.Info().Int("slots", slots).Msg("seed complete")
	for _, teacher := range teachers {
		logger.Info().Str("teacher_id", teacher.ID.String()).Str("name", teacher.Name).Msg("demo teacher")
	}
	logger.Info().Str("student_id", students[0].ID.String()).Str("name", students[0].Name).Msg("demo student")
}

func seedUsers(role booking.Role, count int, now time.Time) []booking.User {
	users := make([]booking.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, booking.User{
			ID:        uuid.New(),
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Role:      role,
			CreatedAt: now,
		})
	}
	return users
}
