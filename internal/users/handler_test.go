package users

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resumegen-backend/internal/auth"
	"resumegen-backend/internal/server/middleware"
	localstore "resumegen-backend/internal/storage/object/local"
)

func newTestStack(t *testing.T) (*gin.Engine, *Service, *fakeMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mailer := &fakeMailer{}
	svc := NewService(
		NewMemoryRepo(),
		auth.NewMemoryStore(),
		auth.NewSigner("test-secret"),
		mailer,
		localstore.New(t.TempDir()),
		nil,
		"http://localhost:5173",
	)
	h := NewHandler(svc)

	r := gin.New()
	public := r.Group("/auth")
	h.RegisterPublicRoutes(public)
	protected := r.Group("/auth")
	protected.Use(middleware.Session(svc.Sessions))
	h.RegisterProtectedRoutes(protected)
	return r, svc, mailer
}

func postJSON(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, mailer *fakeMailer) *http.Cookie {
	t.Helper()
	w := postJSON(r, "/auth/register", `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"Abcdef1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	token := strings.TrimPrefix(mailer.body, activationLinkPrefix)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/activate?token="+token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("activate status = %d, body = %s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/login", `{"email":"jane@example.com","password":"Abcdef1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" && c.Value != "" {
			if !c.HttpOnly || !c.Secure {
				t.Fatalf("session cookie must be http-only and secure: %+v", c)
			}
			return c
		}
	}
	t.Fatal("login did not set session cookie")
	return nil
}

func TestRegisterPasswordPolicy(t *testing.T) {
	r, _, _ := newTestStack(t)

	// No uppercase letter.
	w := postJSON(r, "/auth/register", `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"abc123"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("weak password status = %d, want 422 (body %s)", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/register", `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"Abcdef1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("valid password status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	r, _, mailer := newTestStack(t)
	registerAndLogin(t, r, mailer)

	w := postJSON(r, "/auth/register", `{"first_name":"Other","last_name":"Person","email":"jane@example.com","password":"Abcdef1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email status = %d, want 400", w.Code)
	}
}

func TestLoginRequiresActivatedAccount(t *testing.T) {
	r, _, mailer := newTestStack(t)
	postJSON(r, "/auth/register", `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"Abcdef1"}`)

	w := postJSON(r, "/auth/login", `{"email":"jane@example.com","password":"Abcdef1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("inactive login status = %d, want 401 (body %s)", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" && c.Value != "" {
			t.Fatalf("inactive login must not set a session cookie: %+v", c)
		}
	}

	token := strings.TrimPrefix(mailer.body, activationLinkPrefix)
	aw := httptest.NewRecorder()
	r.ServeHTTP(aw, httptest.NewRequest(http.MethodGet, "/auth/activate?token="+token, nil))
	if aw.Code != http.StatusOK {
		t.Fatalf("activate status = %d, body = %s", aw.Code, aw.Body.String())
	}

	w = postJSON(r, "/auth/login", `{"email":"jane@example.com","password":"Abcdef1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login after activation status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestActivateEndpointDistinguishesReasons(t *testing.T) {
	r, _, mailer := newTestStack(t)
	postJSON(r, "/auth/register", `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"Abcdef1"}`)

	token := strings.TrimPrefix(mailer.body, activationLinkPrefix)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/activate?token="+token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("activate status = %d, body = %s", w.Code, w.Body.String())
	}

	// Tampered token reports bad_signature.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/activate?token=not-a-real-token", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad token status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "bad_signature") {
		t.Fatalf("expected bad_signature reason, body = %s", w.Body.String())
	}

	// Expired token reports expired.
	expiredSigner := auth.NewSigner("test-secret")
	expiredSigner.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired := expiredSigner.Sign("jane@example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/activate?token="+expired, nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expired token status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "expired") {
		t.Fatalf("expected expired reason, body = %s", w.Body.String())
	}
}

func TestMeRequiresSession(t *testing.T) {
	r, _, mailer := newTestStack(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/user/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no session status = %d, want 401", w.Code)
	}

	cookie := registerAndLogin(t, r, mailer)
	req := httptest.NewRequest(http.MethodGet, "/auth/user/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", w.Code, w.Body.String())
	}

	var profile Profile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.User.Email != "jane@example.com" {
		t.Fatalf("profile email = %q", profile.User.Email)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r, _, mailer := newTestStack(t)
	cookie := registerAndLogin(t, r, mailer)

	w := postJSON(r, "/auth/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, body = %s", w.Code, w.Body.String())
	}

	// Same token now fails validation.
	req := httptest.NewRequest(http.MethodGet, "/auth/user/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status after logout = %d, want 401", w.Code)
	}
}

func TestUpdateValidatesExperienceEndDate(t *testing.T) {
	r, _, mailer := newTestStack(t)
	cookie := registerAndLogin(t, r, mailer)

	body := `{"experiences":[{"job_title":"Engineer","company":"Acme","start_date":"2020-01-01T00:00:00Z","on_going":false}]}`
	req := httptest.NewRequest(http.MethodPut, "/auth/user/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "end_date") {
		t.Fatalf("expected end_date detail, body = %s", w.Body.String())
	}
}

func TestUploadResume(t *testing.T) {
	r, _, mailer := newTestStack(t)
	cookie := registerAndLogin(t, r, mailer)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte("Jane Doe, Go engineer")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/auth/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		ResumeFile ResumeFile `json:"resume_file"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ResumeFile.FileName != "resume.txt" {
		t.Fatalf("file name = %q", resp.ResumeFile.FileName)
	}
}
