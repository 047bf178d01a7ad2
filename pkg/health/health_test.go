package health

import (
	"testing"
	"time"
)

func TestGetHealthDefaultsHealthy(t *testing.T) {
	m := NewMonitor()
	h := m.GetHealth(4)

	if h.Status != StatusHealthy {
		t.Fatalf("expected healthy with no components, got %s", h.Status)
	}
	if h.ActiveConnections != 4 {
		t.Fatalf("expected 4 active connections, got %d", h.ActiveConnections)
	}
	if h.Goroutines <= 0 {
		t.Fatalf("expected positive goroutine count, got %d", h.Goroutines)
	}
	if h.Uptime < 0 {
		t.Fatalf("negative uptime %d", h.Uptime)
	}
}

func TestWorstComponentWins(t *testing.T) {
	m := NewMonitor()
	m.SetComponentStatus("vectordb", StatusHealthy, "")
	m.SetComponentStatus("llm", StatusDegraded, "slow responses")

	if got := m.GetHealth(0).Status; got != StatusDegraded {
		t.Fatalf("expected degraded, got %s", got)
	}

	m.SetComponentStatus("llm", StatusUnhealthy, "unreachable")
	if got := m.GetHealth(0).Status; got != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %s", got)
	}
}

func TestComponentStatusOverwrite(t *testing.T) {
	m := NewMonitor()
	m.SetComponentStatus("llm", StatusUnhealthy, "unreachable")
	m.SetComponentStatusWithDetails("llm", StatusHealthy, "", map[string]any{"latency_ms": 12})

	h := m.GetHealth(0)
	if h.Status != StatusHealthy {
		t.Fatalf("expected healthy after recovery, got %s", h.Status)
	}
	if len(h.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(h.Components))
	}
	if h.Components[0].Details == nil {
		t.Fatal("expected details to be kept")
	}
	if time.Since(h.Components[0].LastChecked) > time.Minute {
		t.Fatal("stale last_checked timestamp")
	}
}
