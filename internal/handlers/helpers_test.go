package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire/internal/storage"
	"github.com/hirewire/hirewire/internal/store"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingMailer captures outbound mail instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

// failingMailer simulates a dead SMTP host.
type failingMailer struct{}

func (failingMailer) Send(string, string, string) error {
	return errors.New("smtp unreachable")
}

type testApp struct {
	srv   http.Handler
	store *store.Memory
	mail  *recordingMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	uploads, err := storage.New(t.TempDir())
	require.NoError(t, err)

	mem := store.NewMemory()
	mail := &recordingMailer{}

	h := New(mem, uploads, mail, Options{
		Secret:     "test-secret",
		SessionTTL: time.Hour,
		BaseURL:    "http://localhost:4000",
	})
	return &testApp{srv: h.Routes(), store: mem, mail: mail}
}

// withMailer rebuilds the app around a different mailer.
func newTestAppWithMailer(t *testing.T, mail interface {
	Send(to, subject, body string) error
}) *testApp {
	t.Helper()

	uploads, err := storage.New(t.TempDir())
	require.NoError(t, err)

	mem := store.NewMemory()
	h := New(mem, uploads, mail, Options{
		Secret:     "test-secret",
		SessionTTL: time.Hour,
		BaseURL:    "http://localhost:4000",
	})
	return &testApp{srv: h.Routes(), store: mem}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.srv.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(t *testing.T, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(t, req)
}

func (a *testApp) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(t, req)
}

// postMultipart sends fields plus an optional file part named "resume".
func (a *testApp) postMultipart(t *testing.T, path, token string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(t, req)
}

func (a *testApp) register(t *testing.T, name, email, password, role string) {
	t.Helper()
	rec := a.postForm(t, "/register", "", url.Values{
		"name":             {name},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
		"role":             {role},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.postForm(t, "/login", "", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// seedEmployerWithJob registers an employer, logs in, and posts one job.
// Returns the employer token and the job id.
func (a *testApp) seedEmployerWithJob(t *testing.T, email, title, company, location string) (string, int64) {
	t.Helper()
	a.register(t, "Employer "+email, email, "secret1", "employer")
	token := a.login(t, email, "secret1")

	rec := a.postForm(t, "/post-job", token, url.Values{
		"title":       {title},
		"company":     {company},
		"location":    {location},
		"job_type":    {"Remote"},
		"description": {"We are hiring."},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Job struct {
			ID int64 `json:"id"`
		} `json:"job"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return token, resp.Job.ID
}
