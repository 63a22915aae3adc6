// Package session implements the session-backed auth gate. The session holds
// the viewer's denormalized profile for its whole lifetime; handlers never
// re-fetch the user from storage per request.
package session

import (
	"time"

	"uplift/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	keyLoggedIn  = "logged_in"
	keyUserID    = "user_id"
	keyFirstName = "first_name"
	keyLastName  = "last_name"
	keyEmail     = "email"
	keyManager   = "manager"
)

// Profile is the denormalized user identity carried by a session.
type Profile struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
	Manager   bool
}

// FullName returns the profile's display name.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Viewer is the request-scoped identity threaded into every handler.
type Viewer struct {
	LoggedIn bool
	User     *Profile
}

// UserID returns the viewer's user ID, 0 when anonymous.
func (v Viewer) UserID() uint {
	if !v.LoggedIn || v.User == nil {
		return 0
	}
	return v.User.ID
}

// IsManager reports whether the viewer holds the manager role.
func (v Viewer) IsManager() bool {
	return v.LoggedIn && v.User != nil && v.User.Manager
}

// Manager wraps the Fiber session store.
type Manager struct {
	store *session.Store
}

// NewManager creates a session manager. A nil storage falls back to the
// in-memory store, which tests rely on.
func NewManager(storage fiber.Storage) *Manager {
	store := session.New(session.Config{
		Storage:        storage,
		Expiration:     7 * 24 * time.Hour,
		KeyLookup:      "cookie:uplift_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
	return &Manager{store: store}
}

// Login establishes a fresh session carrying the user's profile. The session
// ID is regenerated to prevent fixation.
func (m *Manager) Login(c *fiber.Ctx, user *models.User) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}

	sess.Set(keyLoggedIn, true)
	sess.Set(keyUserID, user.ID)
	sess.Set(keyFirstName, user.FirstName)
	sess.Set(keyLastName, user.LastName)
	sess.Set(keyEmail, user.Email)
	sess.Set(keyManager, user.Manager)

	return sess.Save()
}

// Logout destroys the current session.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// Load reads the viewer identity from the request's session. An anonymous
// viewer is returned when there is no active session.
func (m *Manager) Load(c *fiber.Ctx) (Viewer, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return Viewer{}, err
	}

	loggedIn, _ := sess.Get(keyLoggedIn).(bool)
	if !loggedIn {
		return Viewer{}, nil
	}

	userID, _ := sess.Get(keyUserID).(uint)
	if userID == 0 {
		return Viewer{}, nil
	}

	first, _ := sess.Get(keyFirstName).(string)
	last, _ := sess.Get(keyLastName).(string)
	email, _ := sess.Get(keyEmail).(string)
	manager, _ := sess.Get(keyManager).(bool)

	return Viewer{
		LoggedIn: true,
		User: &Profile{
			ID:        userID,
			FirstName: first,
			LastName:  last,
			Email:     email,
			Manager:   manager,
		},
	}, nil
}
