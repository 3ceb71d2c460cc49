package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/domain"
	"portfolio-resume/internal/model"
	"portfolio-resume/internal/site"
	"portfolio-resume/internal/usecase"
	"portfolio-resume/internal/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct{ calls int }

func (s *stubRenderer) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	s.calls++
	return []byte("%PDF-1.7 stub"), nil
}

type memContacts struct{ saved []*domain.ContactMessage }

func (m *memContacts) Save(_ context.Context, msg *domain.ContactMessage) error {
	m.saved = append(m.saved, msg)
	return nil
}

type testEnv struct {
	app      *fiber.App
	renderer *stubRenderer
	contacts *memContacts
	auth     *auth.Service
}

func newTestEnv(t *testing.T, backendURL string) *testEnv {
	t.Helper()
	content, err := site.LoadContent("")
	require.NoError(t, err)
	pages, err := site.NewPages(content)
	require.NoError(t, err)

	r := &stubRenderer{}
	contacts := &memContacts{}
	authSvc := auth.NewService(auth.Config{BackendURL: backendURL, Secret: "test"}, nil)

	h := NewHandler(Deps{
		Drafts:    wizard.NewMemoryStore(),
		Exporter:  usecase.NewExporter(r, nil),
		Dashboard: usecase.NewDashboardService(nil),
		Contact:   usecase.NewContactService(contacts, nil),
		Pages:     pages,
		Auth:      authSvc,
	})
	return &testEnv{app: NewApp(h, nil), renderer: r, contacts: contacts, auth: authSvc}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (e *testEnv) createDraft(t *testing.T) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var v struct {
		Draft struct {
			ID string `json:"id"`
		} `json:"draft"`
	}
	decodeJSON(t, resp, &v)
	return v.Draft.ID
}

func TestHealthAndCatalogues(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tpls []model.TemplateConfig
	decodeJSON(t, env.do(t, http.MethodGet, "/api/templates", nil), &tpls)
	assert.Len(t, tpls, 4)

	var sections []wizard.Section
	decodeJSON(t, env.do(t, http.MethodGet, "/api/sections", nil), &sections)
	assert.Len(t, sections, len(model.SectionOrder))
}

func TestDraftLifecycleAndExport(t *testing.T) {
	env := newTestEnv(t, "")
	id := env.createDraft(t)
	base := "/api/drafts/" + id

	// Export before anything is filled in fails on the personal section.
	resp := env.do(t, http.MethodPost, base+"/export", nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var verr struct {
		Section string            `json:"section"`
		Fields  map[string]string `json:"fields"`
	}
	decodeJSON(t, resp, &verr)
	assert.Equal(t, "personal", verr.Section)
	assert.Contains(t, verr.Fields, "personal.email")
	assert.Zero(t, env.renderer.calls)

	resp = env.do(t, http.MethodPut, base+"/personal", model.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, base+"/education", model.Education{Institution: "University of London", Degree: "BSc"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, base+"/skills", map[string]interface{}{"name": "Go"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var view struct {
		Draft struct {
			Data model.ResumeData `json:"data"`
		} `json:"draft"`
		Completion wizard.Completion `json:"completion"`
	}
	decodeJSON(t, resp, &view)
	require.Len(t, view.Draft.Data.Skills, 1)
	assert.Equal(t, model.DefaultSkillLevel, view.Draft.Data.Skills[0].Level)
	assert.Equal(t, 57, view.Completion.Percentage)

	resp = env.do(t, http.MethodPost, base+"/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Ada_Lovelace_Resume.pdf"`, resp.Header.Get("Content-Disposition"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestExportFailureMovesWizardToFirstFailingSection(t *testing.T) {
	env := newTestEnv(t, "")
	id := env.createDraft(t)
	base := "/api/drafts/" + id

	env.do(t, http.MethodPut, base+"/personal", model.PersonalInfo{FullName: "Ada", Email: "a@b.co", Phone: "1"})
	env.do(t, http.MethodPost, base+"/navigate", map[string]string{"action": "goto", "section": "projects"})

	resp := env.do(t, http.MethodPost, base+"/export", nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var view struct {
		Draft struct {
			Active string `json:"activeSection"`
		} `json:"draft"`
	}
	decodeJSON(t, env.do(t, http.MethodGet, base, nil), &view)
	assert.Equal(t, "education", view.Draft.Active)
}

func TestEntryErrors(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/api/drafts/" + env.createDraft(t)

	resp := env.do(t, http.MethodPost, base+"/education", model.Education{Institution: "MIT"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, base+"/projects/does-not-exist", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, base+"/hobbies", map[string]string{"name": "chess"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPut, base+"/template", map[string]string{"template": "neon"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, base+"/navigate", map[string]string{"action": "sideways"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSectionBodiesAreSchemaChecked(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/api/drafts/" + env.createDraft(t)

	resp := env.do(t, http.MethodPost, base+"/education", map[string]string{"institution": "MIT", "degree": "BSc", "grade": "A+"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body struct {
		Problems []string `json:"problems"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Problems)
	assert.Contains(t, strings.Join(body.Problems, "; "), "grade")

	resp = env.do(t, http.MethodPost, base+"/skills", map[string]interface{}{"name": "Go", "level": "expert"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPut, base+"/personal", map[string]interface{}{"fullName": 5})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPut, base+"/summary", map[string]interface{}{"summary": "Engineer", "skills": []string{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPut, base+"/summary", map[string]string{"summary": "Engineer"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view struct {
		Draft struct {
			Data model.ResumeData `json:"data"`
		} `json:"draft"`
	}
	decodeJSON(t, env.do(t, http.MethodGet, base, nil), &view)
	assert.Empty(t, view.Draft.Data.Education)
	assert.Empty(t, view.Draft.Data.Skills)
	assert.Empty(t, view.Draft.Data.PersonalInfo.FullName)
	assert.Equal(t, "Engineer", view.Draft.Data.Summary)
}

func TestExportFileNameHeaderIsSafe(t *testing.T) {
	for name, want := range map[string]string{
		`Ada "The Countess" Lovelace`: `attachment; filename="Ada__The_Countess__Lovelace_Resume.pdf"`,
		"../../tmp/evil":              `attachment; filename=".._.._tmp_evil_Resume.pdf"`,
		"Zoë":                         `attachment; filename="Zo%C3%AB_Resume.pdf"`,
	} {
		env := newTestEnv(t, "")
		base := "/api/drafts/" + env.createDraft(t)
		env.do(t, http.MethodPut, base+"/personal", model.PersonalInfo{FullName: name, Email: "ada@example.com", Phone: "555-0100"})
		env.do(t, http.MethodPost, base+"/education", model.Education{Institution: "University of London", Degree: "BSc"})
		env.do(t, http.MethodPost, base+"/skills", map[string]interface{}{"name": "Go"})

		resp := env.do(t, http.MethodPost, base+"/export", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, name)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"), name)
		assert.Equal(t, want, resp.Header.Get("Content-Disposition"), name)
	}
}

func TestConcurrentEntryAddsAreKept(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/api/drafts/" + env.createDraft(t)

	const n = 10
	var wg sync.WaitGroup
	codes := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, _ := json.Marshal(model.Education{Institution: "School " + strconv.Itoa(i), Degree: "BSc"})
			req := httptest.NewRequest(http.MethodPost, base+"/education", bytes.NewReader(b))
			req.Header.Set("Content-Type", "application/json")
			resp, err := env.app.Test(req, -1)
			if err != nil {
				codes <- 0
				return
			}
			codes <- resp.StatusCode
		}(i)
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		assert.Equal(t, fiber.StatusCreated, code)
	}

	var view struct {
		Draft struct {
			Data model.ResumeData `json:"data"`
		} `json:"draft"`
	}
	decodeJSON(t, env.do(t, http.MethodGet, base, nil), &view)
	assert.Len(t, view.Draft.Data.Education, n)
}

func TestDraftNotFound(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/drafts/0b9d7d48-6a3f-4a0e-9a83-4c2f0d0c1f00", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/drafts/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDraftDeleteAndPreview(t *testing.T) {
	env := newTestEnv(t, "")
	id := env.createDraft(t)
	base := "/api/drafts/" + id

	resp := env.do(t, http.MethodGet, base+"/preview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Your Name")

	resp = env.do(t, http.MethodGet, base+"/validate", nil)
	var v struct {
		Valid   bool   `json:"valid"`
		Section string `json:"section"`
	}
	decodeJSON(t, resp, &v)
	assert.False(t, v.Valid)
	assert.Equal(t, "personal", v.Section)

	resp = env.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodGet, base, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPublicPages(t *testing.T) {
	env := newTestEnv(t, "")
	for _, path := range []string{"/", "/about", "/services", "/contact", "/login", "/register"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html", path)
	}
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestContactForm(t *testing.T) {
	env := newTestEnv(t, "")

	resp := postForm(t, env.app, "/contact", url.Values{"name": {"Ada"}, "email": {"nope"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, env.contacts.saved)

	resp = postForm(t, env.app, "/contact", url.Values{
		"name": {"Ada"}, "email": {"ada@example.com"}, "subject": {"Hello"}, "message": {"Hi there"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, env.contacts.saved, 1)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Thank you for your message!")
}

func TestDashboardRequiresSession(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "7", "first_name": "Ada", "email": "ada@example.com"})
	}))
	defer backend.Close()
	env := newTestEnv(t, backend.URL)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login"))

	resp = postForm(t, env.app, "/login", url.Values{"email": {"ada@example.com"}, "password": {"pw"}, "callbackUrl": {"/dashboard"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Welcome back, Ada")
}

func TestLoginFailureShowsGenericMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()
	env := newTestEnv(t, backend.URL)

	resp := postForm(t, env.app, "/login", url.Values{"email": {"ada@example.com"}, "password": {"bad"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), signInFailed)
}

func TestRegisterValidationAndBackendMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	}))
	defer backend.Close()
	env := newTestEnv(t, backend.URL)

	resp := env.do(t, http.MethodPost, "/register", map[string]interface{}{"firstName": "A"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/register", auth.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Password: "Secret123", ConfirmPassword: "Secret123", AgreeToTerms: true,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var out map[string]string
	decodeJSON(t, resp, &out)
	assert.Equal(t, "Email already registered", out["error"])
}

func TestSafeCallback(t *testing.T) {
	assert.Equal(t, "/dashboard", safeCallback(""))
	assert.Equal(t, "/dashboard", safeCallback("https://evil.example"))
	assert.Equal(t, "/dashboard", safeCallback("//evil.example"))
	assert.Equal(t, "/about", safeCallback("/about"))
}
