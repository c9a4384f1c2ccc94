package app

import (
	"bytes"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TICKET_API_URL", "http://localhost:5001")
	t.Setenv("STATE_DIR", t.TempDir())
	t.Setenv("FIXTURES_API_KEY", "")
	t.Setenv("METRICS_ADDR", "")
}

func TestInit_WithValidConfig_Succeeds(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	a, err := Init(&buf, "text")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if a == nil {
		t.Fatal("expected non-nil app")
	}
	if a.cfg.TicketAPIURL != "http://localhost:5001" {
		t.Errorf("TicketAPIURL = %q, want http://localhost:5001", a.cfg.TicketAPIURL)
	}
	if a.session == nil || a.cart == nil || a.matches == nil || a.ticketing == nil {
		t.Error("expected all dependencies to be wired")
	}
	if a.session.LoggedIn() {
		t.Error("fresh state dir must start logged out")
	}
}

func TestInit_WithMissingConfig_ReturnsError(t *testing.T) {
	t.Setenv("TICKET_API_URL", "")

	var buf bytes.Buffer
	a, err := Init(&buf, "text")
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
	if a != nil {
		t.Error("expected nil app on error")
	}
}
