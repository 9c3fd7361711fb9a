package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockAssistantChecker struct {
	err error
}

func (m *mockAssistantChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockAssistantChecker{}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"database", "assistant", "ratelimit"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}, &mockAssistantChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["assistant"] != CheckOK {
		t.Errorf("expected assistant %q, got %q", CheckOK, r.Checks["assistant"])
	}
}

func TestCheck_AssistantErrorDegrades(t *testing.T) {
	svc := New(&mockPinger{}, &mockAssistantChecker{err: errors.New("timeout")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["assistant"] != CheckError {
		t.Errorf("expected assistant %q, got %q", CheckError, r.Checks["assistant"])
	}
}

func TestCheck_LimiterErrorDegrades(t *testing.T) {
	svc := New(&mockPinger{}, nil, &mockPinger{err: errors.New("redis down")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["ratelimit"] != CheckError {
		t.Error("expected ratelimit error")
	}
}

func TestCheck_AllFail(t *testing.T) {
	svc := New(
		&mockPinger{err: errors.New("db down")},
		&mockAssistantChecker{err: errors.New("ai down")},
		&mockPinger{err: errors.New("redis down")},
	)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Error("expected database error")
	}
	if r.Checks["assistant"] != CheckError {
		t.Error("expected assistant error")
	}
}

func TestCheck_OptionalComponentsAbsent(t *testing.T) {
	svc := New(&mockPinger{}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["assistant"]; ok {
		t.Error("assistant check should be absent when assistant is nil")
	}
	if _, ok := r.Checks["ratelimit"]; ok {
		t.Error("ratelimit check should be absent when limiter is nil")
	}
}
