package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/krfshft/PoeHud-Sunbeam/internal/health"
)

func get(t *testing.T, h *health.Handler, path string) (int, health.Report, string) {
	t.Helper()
	mux := http.NewServeMux()
	h.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body health.Report
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return rec.Code, body, rec.Header().Get("Content-Type")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := health.New()
	h.Add("broken", func(context.Context) error { return errors.New("down") })

	code, body, ct := get(t, h, "/healthz")
	if code != http.StatusOK || body.Status != "ok" {
		t.Errorf("healthz = %d %q, want 200 ok", code, body.Status)
	}
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	pass := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("lists not loaded") }

	tests := []struct {
		name       string
		checks     map[string]health.Check
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "no checks",
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "all pass",
			checks:     map[string]health.Check{"lists": pass, "frames": pass},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{"lists": "ok", "frames": "ok"},
		},
		{
			name:       "one fails",
			checks:     map[string]health.Check{"lists": fail, "frames": pass},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "fail",
			wantChecks: map[string]string{"lists": "fail: lists not loaded", "frames": "ok"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := health.New()
			for name, c := range tc.checks {
				h.Add(name, c)
			}

			code, body, _ := get(t, h, "/readyz")
			if code != tc.wantCode || body.Status != tc.wantStatus {
				t.Errorf("readyz = %d %q, want %d %q", code, body.Status, tc.wantCode, tc.wantStatus)
			}
			for name, want := range tc.wantChecks {
				if body.Checks[name] != want {
					t.Errorf("check %q = %q, want %q", name, body.Checks[name], want)
				}
			}
		})
	}
}

func TestAdd_ReplacesByName(t *testing.T) {
	t.Parallel()

	h := health.New()
	h.Add("lists", func(context.Context) error { return errors.New("old") })
	h.Add("lists", func(context.Context) error { return nil })

	rep := h.Evaluate(context.Background())
	if rep.Status != "ok" || len(rep.Checks) != 1 {
		t.Errorf("report = %+v", rep)
	}
}

func TestEvaluate_CheckSeesDeadline(t *testing.T) {
	t.Parallel()

	h := health.New()
	h.Add("deadline", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("no deadline")
		}
		return nil
	})
	if rep := h.Evaluate(context.Background()); rep.Status != "ok" {
		t.Errorf("report = %+v", rep)
	}
}

func TestRecent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name    string
		last    time.Time
		wantErr string
	}{
		{"fresh", now, ""},
		{"never", time.Time{}, "never ran"},
		{"stale", now.Add(-time.Minute), "last run"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := health.Recent(func() time.Time { return tc.last }, 5*time.Second)(context.Background())
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}
