// Command seed loads a minimal development dataset: one school, one track
// with two sessions, the three roles and one group wired together.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/codeverse-academy/academy-service/internal/config"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/repositories/postgres"
	"github.com/codeverse-academy/academy-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := pkg.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})

	ctx := context.Background()
	if err := seed(ctx, repo); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	logger.Info("Seeding finished")
}

func seed(ctx context.Context, repo repositories.Repository) error {
	return repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		school := &models.School{Name: "Tech Academy Main"}
		if err := tx.School().Create(ctx, school); err != nil {
			return err
		}

		description := "Introduction to Python programming"
		track := &models.Track{
			Title:       "Python for Beginners",
			Description: &description,
		}
		if err := tx.Track().Create(ctx, track); err != nil {
			return err
		}
		for i, title := range []string{"Session 1: Variables", "Session 2: Loops"} {
			session := &models.Session{
				TrackID:    track.ID,
				Title:      title,
				OrderIndex: i + 1,
			}
			if err := tx.Track().CreateSession(ctx, session); err != nil {
				return err
			}
		}

		users := []struct {
			username string
			name     string
			role     models.UserRole
		}{
			{"admin", "Super Admin", models.RoleAdmin},
			{"teacher1", "John Teacher", models.RoleTeacher},
			{"student1", "Alice Student", models.RoleStudent},
			{"student2", "Bob Student", models.RoleStudent},
		}

		created := make(map[string]*models.User, len(users))
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := &models.User{
				Username:     u.username,
				PasswordHash: string(hash),
				Name:         u.name,
				Role:         u.role,
			}
			if err := tx.User().Create(ctx, user); err != nil {
				return err
			}
			created[u.username] = user
		}

		group := &models.Group{
			Name:      "Python Group A",
			DayOfWeek: "Monday",
			TimeSlot:  "17:00 - 18:30",
			Subject:   "Python Level 1",
			AgeRange:  "10-12 years",
			SchoolID:  school.ID,
		}
		if err := tx.Group().Create(ctx, group); err != nil {
			return err
		}

		if err := tx.Group().AddTrack(ctx, &models.GroupTrack{
			GroupID:   group.ID,
			TrackID:   track.ID,
			StartDate: time.Now(),
		}); err != nil {
			return err
		}

		if err := tx.Group().AddTeacher(ctx, group.ID, created["teacher1"].ID); err != nil {
			return err
		}
		for _, username := range []string{"student1", "student2"} {
			student := created[username]
			if err := tx.Group().AddStudent(ctx, group.ID, student.ID); err != nil {
				return err
			}
			if err := tx.Evaluation().EnsureExists(ctx, group.ID, student.ID); err != nil {
				return err
			}
		}

		return nil
	})
}
