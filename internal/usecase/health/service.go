package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates no dataset is loaded, so no query can be served.
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

// Check names.
const (
	CheckDataset = "dataset"
	CheckStorage = "storage"
	CheckChat    = "chat"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	dataset Pinger
	storage Pinger
	chat    ChatChecker
}

// New creates a Service. chat can be nil.
func New(dataset, storage Pinger, chat ChatChecker) *Service {
	return &Service{dataset: dataset, storage: storage, chat: chat}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks[CheckDataset] = result(s.dataset.Ping(ctx))
	checks[CheckStorage] = result(s.storage.Ping(ctx))
	if s.chat != nil {
		checks[CheckChat] = result(s.chat.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks[CheckDataset] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
