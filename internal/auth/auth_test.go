package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFromUser(t *testing.T) {
	s := SessionFromUser(User{ID: "1", Email: "a@b.co", Name: "Ada Lovelace", FirstName: "Ada", Role: "admin"})
	assert.Equal(t, Session{ID: "1", Email: "a@b.co", Name: "Ada", Role: "admin"}, s)

	s = SessionFromUser(User{ID: "2", Name: "Grace Hopper"})
	assert.Equal(t, "Grace Hopper", s.Name)
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)
	token, err := ts.Issue(Session{ID: "1", Email: "a@b.co", Name: "Ada", Role: "user"})
	require.NoError(t, err)

	sess, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Ada", sess.Name)

	_, err = NewTokenService("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Expired(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)
	ts.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := ts.Issue(Session{ID: "1"})
	require.NoError(t, err)

	ts.now = time.Now
	_, err = ts.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfig_Providers(t *testing.T) {
	assert.Len(t, Config{}.Providers(), 1)
	p := Config{GoogleClientID: "id", GoogleClientSecret: "s"}.Providers()
	require.Len(t, p, 2)
	assert.Equal(t, "google", p[0].ID)
}

func TestRegisterRequest_Validate(t *testing.T) {
	ok := RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Password: "Secret123", ConfirmPassword: "Secret123", AgreeToTerms: true,
	}
	assert.Empty(t, ok.Validate())

	bad := RegisterRequest{FirstName: "A", Email: "ada@", Password: "secret", ConfirmPassword: "x"}
	errs := bad.Validate()
	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "lastName")
	assert.Contains(t, errs, "email")
	assert.Equal(t, "Password must be at least 8 characters", errs["password"])
	assert.Equal(t, "Passwords don't match", errs["confirmPassword"])
	assert.Contains(t, errs, "agreeToTerms")

	weak := ok
	weak.Password, weak.ConfirmPassword = "alllowercase1", "alllowercase1"
	assert.Contains(t, weak.Validate()["password"], "uppercase")
}

func newBackend(t *testing.T, h http.HandlerFunc) *BackendClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewBackendClient(srv.URL, nil)
	c.backoff = func(int) time.Duration { return 0 }
	return c
}

func TestBackendClient_Login(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "right" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "7", "first_name": "Ada", "email": body["email"], "role": "user"})
	})

	u, err := c.Login(context.Background(), "ada@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)

	_, err = c.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrSignInFailed)

	_, err = c.Login(context.Background(), "", "right")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestBackendClient_LoginNumericID(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 42, "email": "ada@example.com", "first_name": "Ada"}`))
	})

	u, err := c.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, UserID("42"), u.ID)
	assert.Equal(t, "42", SessionFromUser(u).ID)
}

func TestUserID_UnmarshalJSON(t *testing.T) {
	var users []User
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"abc"},{"id":7},{"id":12345678901234567890},{"id":null}]`), &users))
	assert.Equal(t, []UserID{"abc", "7", "12345678901234567890", ""}, []UserID{users[0].ID, users[1].ID, users[2].ID, users[3].ID})

	var u User
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"nested":true}}`), &u))
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &u))
}

func TestBackendClient_LoginTransportError(t *testing.T) {
	c := NewBackendClient("http://127.0.0.1:1", nil)
	c.backoff = func(int) time.Duration { return 0 }
	_, err := c.Login(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, ErrSignInFailed)
}

func TestBackendClient_RegisterSurfacesBackendMessage(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/register", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	})

	_, err := c.Register(context.Background(), RegisterRequest{Email: "ada@example.com"})
	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, http.StatusConflict, regErr.Status)
	assert.Equal(t, "Email already registered", regErr.Message)
}

func TestBackendClient_ListUsers(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode([]User{{ID: "1"}, {ID: "2"}})
	})
	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestMiddleware_RequireSession(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)
	app := fiber.New()
	app.Use(Middleware(ts))
	app.Get("/dashboard", RequireSession("/login"), func(c *fiber.Ctx) error {
		s, _ := SessionFrom(c)
		return c.SendString(s.Name)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard", resp.Header.Get("Location"))

	token, _ := ts.Issue(Session{ID: "1", Name: "Ada"})
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestService_SignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "7", "name": "Ada Lovelace", "email": "ada@example.com"})
	}))
	defer srv.Close()

	svc := NewService(Config{BackendURL: srv.URL, Secret: "s"}, nil)
	assert.Equal(t, DefaultSignInPath, svc.Config.SignInPath)

	sess, token, err := svc.SignIn(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", sess.Name)

	parsed, err := svc.Tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "7", parsed.ID)
}
