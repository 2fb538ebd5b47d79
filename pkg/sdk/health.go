package yojana

import (
	"context"
	"slices"

	healthuc "github.com/yojanadost/yojana/internal/usecase/health"
)

// HealthStatus is the outcome of the dataset and session storage checks.
type HealthStatus struct {
	Status string            // "ok", "degraded" or "error"
	Checks map[string]string // "dataset"/"storage" → "ok"/"error"
}

// Healthy reports whether every check passed.
func (h HealthStatus) Healthy() bool { return h.Status == string(healthuc.Healthy) }

// Serving reports whether queries can still be answered.
// Only a missing dataset stops the pipeline; a storage outage breaks sessions alone.
func (h HealthStatus) Serving() bool { return h.Status != string(healthuc.Unhealthy) }

// Failing lists the names of failed checks in sorted order.
func (h HealthStatus) Failing() []string {
	var out []string
	for name, res := range h.Checks {
		if res != string(healthuc.CheckOK) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Health checks the dataset snapshot and session storage.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
