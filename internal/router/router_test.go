package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/jobportal/internal/config"
	"github.com/deppfellow/jobportal/internal/handler"
	"github.com/deppfellow/jobportal/internal/repository/memrepo"
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

type testAPI struct {
	echo  *echo.Echo
	store *memrepo.Store
	cfg   *config.Config
}

func testConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.HealthChecks.Checks = []string{"database"}
	obs.HealthChecks.Timeout = 3 * time.Second

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Host:            "127.0.0.1",
			Port:            1,
			User:            "portal",
			Name:            "job_portal",
			SSLMode:         "disable",
			MaxOpenConns:    1,
			ConnMaxLifetime: 60,
			ConnMaxIdleTime: 60,
			QueryTimeout:    time.Second,
		},
		Auth:          config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Observability: obs,
	}
}

func newTestAPI(t *testing.T, tweak func(*config.Config)) *testAPI {
	t.Helper()

	cfg := testConfig()
	if tweak != nil {
		tweak(cfg)
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	t.Cleanup(func() { _ = s.DB.Close() })

	store := memrepo.New()
	services := service.New(store.Repositories(), service.NopNotifier{}, cfg.Auth.BcryptCost, &logger)

	return &testAPI{
		echo:  NewRouter(s, handler.NewHandlers(s, services), services),
		store: store,
		cfg:   cfg,
	}
}

type credentials struct{ email, password string }

func (a *testAPI) do(t *testing.T, method, path, body string, auth *credentials) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth != nil {
		req.SetBasicAuth(auth.email, auth.password)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, want, rec.Body.String())
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Errors  []struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"errors"`
}

func (a *testAPI) seed(t *testing.T) {
	t.Helper()
	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/companies", `{"name":"Acme","location":"Paris","industry":"Software"}`, nil), http.StatusCreated)
	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/jobs", `{"company_id":1,"title":"Backend Engineer","location":"New York","skills_required":"Java, SQL"}`, nil), http.StatusCreated)
	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/jobs", `{"company_id":1,"title":"Go Developer","location":"Remote","skills_required":"Go"}`, nil), http.StatusCreated)
	expectStatus(t, a.do(t, http.MethodPost, "/api/v1/users", `{"name":"Alice","email":"alice@example.com","password":"pw","skills":"Go"}`, nil), http.StatusCreated)
}

var alice = &credentials{"alice@example.com", "pw"}

func TestJobSearchWithCompanies(t *testing.T) {
	api := newTestAPI(t, nil)
	api.seed(t)

	rec := api.do(t, http.MethodGet, "/api/v1/jobs?skills=SQL", "", nil)
	expectStatus(t, rec, http.StatusOK)

	jobs := decode[[]map[string]any](t, rec)
	if len(jobs) != 1 || jobs[0]["title"] != "Backend Engineer" {
		t.Fatalf("unexpected jobs %v", jobs)
	}
	company, _ := jobs[0]["company"].(map[string]any)
	if company["name"] != "Acme" {
		t.Fatalf("missing company in %v", jobs[0])
	}

	rec = api.do(t, http.MethodGet, "/api/v1/jobs?skills=sql&location=remote", "", nil)
	if jobs := decode[[]map[string]any](t, rec); len(jobs) != 0 {
		t.Fatalf("expected no job in both filters, got %v", jobs)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/jobs", "", nil)
	if jobs := decode[[]map[string]any](t, rec); len(jobs) != 2 {
		t.Fatalf("expected all jobs, got %v", jobs)
	}
}

func TestNotFoundAndValidation(t *testing.T) {
	api := newTestAPI(t, nil)
	api.seed(t)

	rec := api.do(t, http.MethodGet, "/api/v1/jobs/99", "", nil)
	expectStatus(t, rec, http.StatusNotFound)
	if e := decode[apiError](t, rec); e.Code != "JOB_POSTING_NOT_FOUND" {
		t.Fatalf("code = %q", e.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/jobs/abc", "", nil)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = api.do(t, http.MethodPost, "/api/v1/jobs", `{"company_id":1,"title":""}`, nil)
	expectStatus(t, rec, http.StatusBadRequest)
	e := decode[apiError](t, rec)
	if len(e.Errors) != 1 || e.Errors[0].Field != "title" || e.Errors[0].Error != "is required" {
		t.Fatalf("unexpected field errors %+v", e.Errors)
	}

	rec = api.do(t, http.MethodPost, "/api/v1/jobs", `{"company_id":42,"title":"Ghost"}`, nil)
	expectStatus(t, rec, http.StatusNotFound)

	rec = api.do(t, http.MethodGet, "/api/v1/nowhere", "", nil)
	expectStatus(t, rec, http.StatusNotFound)
	if e := decode[apiError](t, rec); e.Message != "Route not found" {
		t.Fatalf("message = %q", e.Message)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/companies/1", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if c := decode[map[string]any](t, rec); len(c["jobs"].([]any)) != 2 {
		t.Fatalf("company jobs = %v", c["jobs"])
	}
}

func TestRegistration(t *testing.T) {
	api := newTestAPI(t, nil)
	api.seed(t)

	rec := api.do(t, http.MethodPost, "/api/v1/users", `{"name":"Alice","email":"alice@example.com","password":"other"}`, nil)
	expectStatus(t, rec, http.StatusConflict)
	if e := decode[apiError](t, rec); e.Code != "USER_ALREADY_EXISTS" {
		t.Fatalf("code = %q", e.Code)
	}

	rec = api.do(t, http.MethodPost, "/api/v1/users", `{"name":"Bob","email":"bob@example.com","password":"pw"}`, nil)
	expectStatus(t, rec, http.StatusCreated)
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/v1/users", `{"name":"Eve","email":"nope","password":"pw"}`, nil)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = api.do(t, http.MethodPost, "/api/v1/users",
		`{"name":"Zoe","email":"zoe@example.com","password":"`+strings.Repeat("é", 40)+`"}`, nil)
	expectStatus(t, rec, http.StatusBadRequest)
	e := decode[apiError](t, rec)
	if len(e.Errors) != 1 || e.Errors[0].Field != "password" || e.Errors[0].Error != "must not exceed 72 bytes" {
		t.Fatalf("unexpected field errors %+v", e.Errors)
	}
}

func TestBasicAuth(t *testing.T) {
	api := newTestAPI(t, nil)
	api.seed(t)

	rec := api.do(t, http.MethodGet, "/api/v1/me", "", nil)
	expectStatus(t, rec, http.StatusUnauthorized)
	if rec.Header().Get(echo.HeaderWWWAuthenticate) == "" {
		t.Fatalf("missing WWW-Authenticate challenge")
	}

	rec = api.do(t, http.MethodGet, "/api/v1/me", "", &credentials{"alice@example.com", "wrong"})
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = api.do(t, http.MethodGet, "/api/v1/me", "", alice)
	expectStatus(t, rec, http.StatusOK)
	if u := decode[map[string]any](t, rec); u["email"] != "alice@example.com" {
		t.Fatalf("profile = %v", u)
	}

	rec = api.do(t, http.MethodPatch, "/api/v1/me", `{"location":"Remote","name":""}`, alice)
	expectStatus(t, rec, http.StatusOK)
	if u := decode[map[string]any](t, rec); u["location"] != "Remote" || u["name"] != "Alice" {
		t.Fatalf("updated profile = %v", u)
	}
}

func TestApplicationsAndInterviews(t *testing.T) {
	api := newTestAPI(t, nil)
	api.seed(t)

	rec := api.do(t, http.MethodPost, "/api/v1/me/applications", `{"job_id":1}`, alice)
	expectStatus(t, rec, http.StatusCreated)
	if app := decode[map[string]any](t, rec); app["status"] != "Pending" {
		t.Fatalf("application = %v", app)
	}

	rec = api.do(t, http.MethodPost, "/api/v1/me/applications", `{"job_id":1}`, alice)
	expectStatus(t, rec, http.StatusConflict)

	expectStatus(t, api.do(t, http.MethodPost, "/api/v1/me/applications", `{"job_id":2}`, alice), http.StatusCreated)

	rec = api.do(t, http.MethodGet, "/api/v1/me/applications", "", alice)
	expectStatus(t, rec, http.StatusOK)
	apps := decode[[]map[string]any](t, rec)
	if len(apps) != 2 {
		t.Fatalf("applications = %v", apps)
	}
	if job, _ := apps[0]["job"].(map[string]any); job["title"] != "Backend Engineer" {
		t.Fatalf("application job = %v", apps[0]["job"])
	}

	expectStatus(t, api.do(t, http.MethodPatch, "/api/v1/applications/1", `{"status":"On Hold"}`, nil), http.StatusBadRequest)
	rec = api.do(t, http.MethodPatch, "/api/v1/applications/1", `{"status":"accepted"}`, nil)
	expectStatus(t, rec, http.StatusOK)
	if app := decode[map[string]any](t, rec); app["status"] != "Accepted" {
		t.Fatalf("status = %v", app["status"])
	}

	rec = api.do(t, http.MethodPost, "/api/v1/applications/1/interviews", `{"scheduled_date":"2026-05-04"}`, nil)
	expectStatus(t, rec, http.StatusCreated)
	expectStatus(t, api.do(t, http.MethodPost, "/api/v1/applications/1/interviews", `{"scheduled_date":"2026-05-05"}`, nil), http.StatusConflict)
	expectStatus(t, api.do(t, http.MethodPost, "/api/v1/applications/2/interviews", `{"scheduled_date":"May 4"}`, nil), http.StatusBadRequest)

	rec = api.do(t, http.MethodGet, "/api/v1/interviews?from=2026-05-01&to=2026-05-04", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if list := decode[[]map[string]any](t, rec); len(list) != 1 {
		t.Fatalf("interviews in range = %v", list)
	}
	expectStatus(t, api.do(t, http.MethodGet, "/api/v1/interviews?from=2026-05-01", "", nil), http.StatusBadRequest)

	rec = api.do(t, http.MethodPatch, "/api/v1/interviews/1", `{"status":"Completed","feedback":"Strong"}`, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = api.do(t, http.MethodGet, "/api/v1/interviews?status=completed", "", nil)
	if list := decode[[]map[string]any](t, rec); len(list) != 1 || list[0]["feedback"] != "Strong" {
		t.Fatalf("completed interviews = %v", list)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/me/interviews", "", alice)
	if list := decode[[]map[string]any](t, rec); len(list) != 1 {
		t.Fatalf("my interviews = %v", list)
	}

	// The interviewed application is still referenced.
	rec = api.do(t, http.MethodDelete, "/api/v1/me/applications/1", "", alice)
	expectStatus(t, rec, http.StatusBadRequest)
	if e := decode[apiError](t, rec); e.Message != "The Application is still referenced by other records" {
		t.Fatalf("message = %q", e.Message)
	}

	expectStatus(t, api.do(t, http.MethodDelete, "/api/v1/me/applications/2", "", alice), http.StatusNoContent)
	expectStatus(t, api.do(t, http.MethodDelete, "/api/v1/me/applications/2", "", alice), http.StatusNotFound)
}

func TestStorageFailureIsServiceUnavailable(t *testing.T) {
	api := newTestAPI(t, nil)
	api.seed(t)
	api.store.FailWith(sqlerr.ErrConnection)

	rec := api.do(t, http.MethodGet, "/api/v1/jobs", "", nil)
	expectStatus(t, rec, http.StatusServiceUnavailable)

	rec = api.do(t, http.MethodGet, "/api/v1/me", "", alice)
	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestRateLimit(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) { cfg.Server.RateLimit = 0.5 })

	var last *httptest.ResponseRecorder
	for range 3 {
		last = api.do(t, http.MethodGet, "/api/v1/companies", "", nil)
	}
	expectStatus(t, last, http.StatusTooManyRequests)
}

func TestRequestID(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/api/v1/companies", "", nil)
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("missing request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec = httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)
	if got := rec.Header().Get(echo.HeaderXRequestID); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/status", "", nil)
	expectStatus(t, rec, http.StatusServiceUnavailable)
	body := decode[map[string]any](t, rec)
	db, _ := body["checks"].(map[string]any)["database"].(map[string]any)
	if db["status"] != "unhealthy" {
		t.Fatalf("database check = %v", db)
	}

	api = newTestAPI(t, func(cfg *config.Config) { cfg.Observability.HealthChecks.Enabled = false })
	expectStatus(t, api.do(t, http.MethodGet, "/status", "", nil), http.StatusOK)
}
