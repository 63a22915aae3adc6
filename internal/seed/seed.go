package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"uplift/internal/middleware"
	"uplift/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed personas.yml
var personasYAML []byte

// persona is one hand-curated account from the embedded fixture file.
type persona struct {
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
	Email     string   `yaml:"email"`
	Manager   bool     `yaml:"manager"`
	Posts     []string `yaml:"posts"`
}

type personaFile struct {
	Personas []persona `yaml:"personas"`
}

// Options tunes the volume of generated filler data on top of the fixed
// personas.
type Options struct {
	ExtraUsers       int
	PostsPerUser     int
	RepliesPerPost   int
	ReactionsPerPost int
}

// DefaultOptions is a small but lively dataset.
var DefaultOptions = Options{
	ExtraUsers:       8,
	PostsPerUser:     3,
	RepliesPerPost:   2,
	ReactionsPerPost: 4,
}

// Run populates the database with the fixed personas plus generated users,
// submissions, replies and reactions. It is idempotent on personas: an
// existing persona email is skipped, not duplicated.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	var file personaFile
	if err := yaml.Unmarshal(personasYAML, &file); err != nil {
		return fmt.Errorf("parse personas: %w", err)
	}

	users, err := seedPersonas(ctx, db, file.Personas)
	if err != nil {
		return err
	}

	for i := 0; i < opts.ExtraUsers; i++ {
		user, err := randomUser()
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}

	var submissions []*models.Submission
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			age := time.Duration(gofakeit.Number(1, 72)) * time.Hour
			submission := randomSubmission(user.ID, age)
			if err := db.WithContext(ctx).Create(submission).Error; err != nil {
				return fmt.Errorf("create submission: %w", err)
			}
			submissions = append(submissions, submission)
		}
	}

	for _, submission := range submissions {
		for i := 0; i < opts.RepliesPerPost; i++ {
			author := users[gofakeit.Number(0, len(users)-1)]
			if err := db.WithContext(ctx).Create(randomReply(submission.ID, author.ID)).Error; err != nil {
				return fmt.Errorf("create reply: %w", err)
			}
		}

		// Pick distinct reactors so the unique (submission, user) constraint
		// is never violated.
		for _, reactor := range pickDistinct(users, opts.ReactionsPerPost) {
			if err := db.WithContext(ctx).Create(randomReaction(submission.ID, reactor.ID)).Error; err != nil {
				return fmt.Errorf("create reaction: %w", err)
			}
		}
	}

	middleware.Logger.Info("seed complete",
		slog.Int("users", len(users)),
		slog.Int("submissions", len(submissions)))
	return nil
}

func seedPersonas(ctx context.Context, db *gorm.DB, personas []persona) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DevPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var users []*models.User
	for _, p := range personas {
		var existing models.User
		err := db.WithContext(ctx).Where("email = ?", p.Email).First(&existing).Error
		if err == nil {
			users = append(users, &existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("look up persona %s: %w", p.Email, err)
		}

		user := &models.User{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Password:  string(hashed),
			Manager:   p.Manager,
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("create persona %s: %w", p.Email, err)
		}

		for _, text := range p.Posts {
			userID := user.ID
			submission := &models.Submission{UserID: &userID, Text: text}
			if err := db.WithContext(ctx).Create(submission).Error; err != nil {
				return nil, fmt.Errorf("create persona post: %w", err)
			}
		}
		users = append(users, user)
	}
	return users, nil
}

// pickDistinct returns up to n distinct users in shuffled order.
func pickDistinct(users []*models.User, n int) []*models.User {
	shuffled := make([]*models.User, len(users))
	copy(shuffled, users)
	gofakeit.ShuffleAnySlice(shuffled)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
