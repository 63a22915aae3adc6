package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"uplift/internal/cache"
	"uplift/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionApp exposes login/whoami/logout endpoints around a Manager so the
// cookie round trip can be exercised through real requests.
func sessionApp(manager *Manager) *fiber.App {
	app := fiber.New()

	app.Post("/login", func(c *fiber.Ctx) error {
		user := &models.User{
			ID:        7,
			FirstName: "Ann",
			LastName:  "Ames",
			Email:     "a@x.com",
			Manager:   true,
		}
		if err := manager.Login(c, user); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})

	app.Get("/whoami", func(c *fiber.Ctx) error {
		viewer, err := manager.Load(c)
		if err != nil {
			return err
		}
		if !viewer.LoggedIn {
			return c.SendString("anonymous")
		}
		return c.SendString(viewer.User.FullName())
	})

	app.Get("/logout", func(c *fiber.Ctx) error {
		if err := manager.Logout(c); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func cookieHeader(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "uplift_session" && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func get(t *testing.T, app *fiber.App, path, cookie string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestLoginLoadLogoutRoundTrip(t *testing.T) {
	manager := NewManager(nil)
	app := sessionApp(manager)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	cookie := cookieHeader(t, resp)

	_, who := get(t, app, "/whoami", cookie)
	assert.Equal(t, "Ann Ames", who)

	logoutReq := httptest.NewRequest(fiber.MethodGet, "/logout", nil)
	logoutReq.Header.Set("Cookie", cookie)
	_, err = app.Test(logoutReq, -1)
	require.NoError(t, err)

	_, who = get(t, app, "/whoami", cookie)
	assert.Equal(t, "anonymous", who)
}

func TestAnonymousViewerWithoutCookie(t *testing.T) {
	manager := NewManager(nil)
	app := sessionApp(manager)

	_, who := get(t, app, "/whoami", "")
	assert.Equal(t, "anonymous", who)
}

func TestSessionsSurviveInRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	storage := cache.NewSessionStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	manager := NewManager(storage)
	app := sessionApp(manager)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	cookie := cookieHeader(t, resp)

	_, who := get(t, app, "/whoami", cookie)
	assert.Equal(t, "Ann Ames", who)

	// The session landed in Redis under the storage prefix.
	keys := mr.Keys()
	require.NotEmpty(t, keys)
	assert.Contains(t, keys[0], "session:")
}

func TestViewerHelpers(t *testing.T) {
	anonymous := Viewer{}
	assert.Zero(t, anonymous.UserID())
	assert.False(t, anonymous.IsManager())

	manager := Viewer{LoggedIn: true, User: &Profile{ID: 3, Manager: true}}
	assert.EqualValues(t, 3, manager.UserID())
	assert.True(t, manager.IsManager())
}
