package component

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/webtoon-api/logger"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func newTestRegistry() *Registry {
	return NewRegistry(logger.NewNop())
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry()
	if err := r.Register(&mockComponent{name: "db"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "db"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "db"})

	if got := r.Get("db"); got == nil || got.Name() != "db" {
		t.Fatalf("expected component db, got %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestStartStopOrder(t *testing.T) {
	var started, stopped []string
	r := newTestRegistry()
	for _, name := range []string{"db", "redis", "http"} {
		_ = r.Register(&mockComponent{name: name, startOrder: &started, stopOrder: &stopped})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	wantStart := []string{"db", "redis", "http"}
	wantStop := []string{"http", "redis", "db"}
	for i := range wantStart {
		if started[i] != wantStart[i] {
			t.Errorf("start[%d] = %q, want %q", i, started[i], wantStart[i])
		}
		if stopped[i] != wantStop[i] {
			t.Errorf("stop[%d] = %q, want %q", i, stopped[i], wantStop[i])
		}
	}
}

func TestStartFailureStopsOnlyStarted(t *testing.T) {
	var started, stopped []string
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "a", startOrder: &started, stopOrder: &stopped})
	_ = r.Register(&mockComponent{name: "b", startErr: errors.New("boom"), startOrder: &started, stopOrder: &stopped})
	_ = r.Register(&mockComponent{name: "c", startOrder: &started, stopOrder: &stopped})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	if len(started) != 2 {
		t.Fatalf("expected 2 start attempts, got %v", started)
	}

	_ = r.StopAll(context.Background())
	if len(stopped) != 1 || stopped[0] != "a" {
		t.Errorf("expected only a to be stopped, got %v", stopped)
	}
}

func TestStopAllCollectsErrors(t *testing.T) {
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "a", stopErr: errors.New("x")})
	_ = r.Register(&mockComponent{name: "b"})
	_ = r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected shutdown error")
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name   string
		states []HealthStatus
		want   HealthStatus
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []HealthStatus{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []HealthStatus{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []HealthStatus{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			for i, s := range tt.states {
				name := string(rune('a' + i))
				_ = r.Register(&mockComponent{name: name, health: Health{Name: name, Status: s}})
			}
			rep := r.Report(context.Background())
			if rep.Status != tt.want {
				t.Errorf("status = %q, want %q", rep.Status, tt.want)
			}
			if len(rep.Components) != len(tt.states) {
				t.Errorf("components = %d, want %d", len(rep.Components), len(tt.states))
			}
		})
	}
}
