// Package health serves the liveness and readiness probes of the metrics
// endpoint.
//
//   - GET /healthz answers 200 while the process can serve HTTP.
//   - GET /readyz answers 200 only when every registered check passes.
//
// Both respond with a JSON object carrying "status" ("ok" or "fail") and, for
// /readyz, a "checks" map from check name to its outcome.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 3 * time.Second

// Check probes one dependency. It returns nil when healthy and must respect
// ctx cancellation.
type Check func(ctx context.Context) error

// Report is the JSON body of both probes.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type namedCheck struct {
	name  string
	check Check
}

// Handler serves the probes. Checks may be added at any time; it is safe for
// concurrent use.
type Handler struct {
	mu     sync.RWMutex
	checks []namedCheck
}

// New returns a Handler with no readiness checks.
func New() *Handler {
	return &Handler{}
}

// Add registers a readiness check. A later check with the same name replaces
// the earlier one.
func (h *Handler) Add(name string, check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.checks {
		if h.checks[i].name == name {
			h.checks[i].check = check
			return
		}
	}
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

// Healthz always answers 200.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Report{Status: "ok"})
}

// Readyz runs every check concurrently, each under [checkTimeout], and
// answers 503 if any fails.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	rep := h.Evaluate(r.Context())
	status := http.StatusOK
	if rep.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, rep)
}

// Evaluate runs the readiness checks and returns their combined report.
func (h *Handler) Evaluate(ctx context.Context) Report {
	h.mu.RLock()
	checks := make([]namedCheck, len(h.checks))
	copy(checks, h.checks)
	h.mu.RUnlock()

	outcomes := make([]error, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			outcomes[i] = c.check(cctx)
			return nil
		})
	}
	_ = g.Wait()

	rep := Report{Status: "ok", Checks: make(map[string]string, len(checks))}
	for i, c := range checks {
		if err := outcomes[i]; err != nil {
			rep.Checks[c.name] = "fail: " + err.Error()
			rep.Status = "fail"
			continue
		}
		rep.Checks[c.name] = "ok"
	}
	return rep
}

// Register adds the /healthz and /readyz routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Recent returns a check that fails when last reports a time older than
// maxAge, or the zero time. It suits loops that stamp each iteration.
func Recent(last func() time.Time, maxAge time.Duration) Check {
	return func(context.Context) error {
		t := last()
		if t.IsZero() {
			return errors.New("never ran")
		}
		if age := time.Since(t); age > maxAge {
			return fmt.Errorf("last run %s ago", age.Round(time.Millisecond))
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
