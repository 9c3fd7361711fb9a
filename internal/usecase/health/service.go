package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	assistant AssistantChecker
	limiter   DBPinger
}

// New creates a Service. assistant and limiter can be nil.
func New(db DBPinger, assistant AssistantChecker, limiter DBPinger) *Service {
	return &Service{db: db, assistant: assistant, limiter: limiter}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.assistant != nil {
		if err := s.assistant.HealthCheck(ctx); err != nil {
			checks["assistant"] = CheckError
		} else {
			checks["assistant"] = CheckOK
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Ping(ctx); err != nil {
			checks["ratelimit"] = CheckError
		} else {
			checks["ratelimit"] = CheckOK
		}
	}

	// A failing datastore is fatal; other components only degrade the gateway.
	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks["database"] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
