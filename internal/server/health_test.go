package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mailbridge/mailbridge/internal/mail"
)

type nopRunner struct{}

func (nopRunner) Run(_ context.Context, _ string) (string, error) { return "", nil }

func newHealthTestContext(t *testing.T, withClient bool) *ServerContext {
	t.Helper()
	var client *mail.Client
	if withClient {
		client = mail.NewClient(nopRunner{}, mail.Options{}, nil)
	}
	sc := NewServerContext(context.Background(), client)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, true))

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("liveness status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != healthStatusOK {
		t.Errorf("status = %q, want %q", resp.Status, healthStatusOK)
	}
}

func TestReadinessHandler(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, true))

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("readiness status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Checks["mail_client"] != healthStatusOK {
		t.Errorf("mail_client check = %q, want %q", resp.Checks["mail_client"], healthStatusOK)
	}
}

func TestReadinessHandlerWithoutMailClient(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, false))

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Checks["mail_client"] != healthStatusNotConfigured {
		t.Errorf("mail_client check = %q, want %q", resp.Checks["mail_client"], healthStatusNotConfigured)
	}
}

func TestReadinessHandlerNotReady(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, true))
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestReadinessHandlerAfterShutdown(t *testing.T) {
	sc := newHealthTestContext(t, true)
	h := NewHealthChecker(sc)
	_ = sc.Shutdown()

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness status after shutdown = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestDetailedHealthHandler(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, true))

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("detailed status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp DetailedHealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MailClient != healthStatusOK {
		t.Errorf("mail_client = %q, want %q", resp.MailClient, healthStatusOK)
	}
	if resp.Uptime == "" {
		t.Error("uptime missing from detailed response")
	}
}

func TestRegisterHealthEndpoints(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, true))
	mux := http.NewServeMux()
	h.RegisterHealthEndpoints(mux)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code == http.StatusNotFound {
			t.Errorf("endpoint %s not registered", path)
		}
	}
}
