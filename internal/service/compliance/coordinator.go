package compliance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
)

// trigger is one scan request. When triggers coalesce, the latest
// scope and reason win.
type trigger struct {
	scope  string
	reason string
}

// Coordinator enforces single-flight scan semantics: rapid triggers are
// debounced into one scan, and triggers arriving mid-scan are coalesced
// into at most one pending re-run that starts when the in-flight scan
// completes. Scans never run concurrently.
type Coordinator struct {
	service compliancedomain.ComplianceService
	delay   time.Duration

	mu      sync.Mutex
	running bool
	queued  *trigger // waiting on the debounce timer
	pending *trigger // arrived while a scan was in flight
	timer   *time.Timer
	stopped bool
}

func NewCoordinator(service compliancedomain.ComplianceService, debounceDelay time.Duration) *Coordinator {
	return &Coordinator{
		service: service,
		delay:   debounceDelay,
	}
}

// Trigger requests a scan. Repeated calls within the debounce window
// collapse into one scan; the delay restarts on every call.
func (c *Coordinator) Trigger(scope, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	c.queued = &trigger{scope: scope, reason: reason}
	slog.Debug("Scan trigger received", "scope", scope, "reason", reason)

	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.fire)
	} else {
		c.timer.Reset(c.delay)
	}
}

// Stop cancels any queued trigger. An in-flight scan runs to
// completion; there is no user-facing cancellation.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.queued = nil
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fire runs when the debounce delay elapses. If a scan is already in
// flight, the trigger is parked as the single pending re-run.
func (c *Coordinator) fire() {
	c.mu.Lock()
	t := c.queued
	c.queued = nil
	c.timer = nil

	if t == nil || c.stopped {
		c.mu.Unlock()
		return
	}
	if c.running {
		c.pending = t
		slog.Info("Scan already in progress, trigger queued", "scope", t.scope, "reason", t.reason)
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	for t != nil {
		c.run(t)

		c.mu.Lock()
		t = c.pending
		c.pending = nil
		if t == nil {
			c.running = false
		}
		c.mu.Unlock()
	}
}

func (c *Coordinator) run(t *trigger) {
	slog.Info("Scan starting", "scope", t.scope, "reason", t.reason)
	if _, err := c.service.RunScan(context.Background(), t.scope); err != nil {
		slog.Error("Scan failed", "scope", t.scope, "reason", t.reason, "error", err)
	}
}
