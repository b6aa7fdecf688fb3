package health

import (
	"context"
	"fmt"
	"os"

	"github.com/zero-day-ai/libdiff/config"
	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/store"
)

// Health states.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Status is the outcome of one or more checks.
type Status struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (s Status) IsHealthy() bool {
	return s.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (s Status) IsDegraded() bool {
	return s.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (s Status) IsUnhealthy() bool {
	return s.Status == StatusUnhealthy
}

// Healthy returns a healthy status.
func Healthy(message string) Status {
	return Status{Status: StatusHealthy, Message: message}
}

// Degraded returns a degraded status.
func Degraded(message string, details map[string]any) Status {
	return Status{Status: StatusDegraded, Message: message, Details: details}
}

// Unhealthy returns an unhealthy status.
func Unhealthy(message string, details map[string]any) Status {
	return Status{Status: StatusUnhealthy, Message: message, Details: details}
}

// DirCheck verifies that path is a readable directory.
func DirCheck(path string) Status {
	if path == "" {
		return Unhealthy("snapshot dir cannot be empty", nil)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return Unhealthy(
			fmt.Sprintf("snapshot dir '%s' is not readable", path),
			map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		)
	}
	if len(entries) == 0 {
		return Degraded(
			fmt.Sprintf("snapshot dir '%s' is empty", path),
			map[string]any{"path": path},
		)
	}

	return Healthy(fmt.Sprintf("snapshot dir '%s' holds %d entries", path, len(entries)))
}

// Pinger is implemented by stores with a network connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck verifies that p answers a ping.
func PingCheck(ctx context.Context, name string, p Pinger) Status {
	if err := p.Ping(ctx); err != nil {
		return Unhealthy(
			fmt.Sprintf("%s is unreachable", name),
			map[string]any{"error": err.Error()},
		)
	}
	return Healthy(fmt.Sprintf("%s is reachable", name))
}

// VersionCheck verifies that src can load every id in versionIDs. A missing
// version is unhealthy; so is one that fails to decode.
func VersionCheck(ctx context.Context, src store.Source, versionIDs ...string) Status {
	if len(versionIDs) == 0 {
		return Healthy("no versions to check")
	}

	checks := make([]Status, 0, len(versionIDs))
	for _, id := range versionIDs {
		v, err := src.GetVersion(ctx, id)
		if err != nil {
			checks = append(checks, Unhealthy(
				fmt.Sprintf("version '%s' failed to load", id),
				map[string]any{
					"version": id,
					"kind":    string(differr.KindOf(err)),
					"error":   err.Error(),
				},
			))
			continue
		}
		checks = append(checks, Healthy(fmt.Sprintf("version '%s' holds %d libraries", id, len(v.Libraries))))
	}
	return Combine(checks...)
}

// PropertyCheck verifies that props resolves the mitigation property. An
// unset property is healthy; the configured default applies.
func PropertyCheck(ctx context.Context, props config.PropertySource) Status {
	value, ok, err := props.ShowMitigationValues(ctx)
	if err != nil {
		return Degraded(
			"property source failed, configured defaults apply",
			map[string]any{
				"key":   config.ShowMitigationValuesKey,
				"error": err.Error(),
			},
		)
	}
	if !ok {
		return Healthy(fmt.Sprintf("property '%s' is not set", config.ShowMitigationValuesKey))
	}
	return Healthy(fmt.Sprintf("property '%s' is %t", config.ShowMitigationValuesKey, value))
}

// Combine aggregates checks. Any unhealthy check makes the result
// unhealthy; otherwise any degraded check makes it degraded.
func Combine(checks ...Status) Status {
	if len(checks) == 0 {
		return Healthy("no checks provided")
	}

	var unhealthy, degraded []string
	var healthyCount int

	for _, check := range checks {
		msg := check.Message
		if msg == "" {
			msg = "unnamed check"
		}
		switch check.Status {
		case StatusUnhealthy:
			unhealthy = append(unhealthy, msg)
		case StatusDegraded:
			degraded = append(degraded, msg)
		case StatusHealthy:
			healthyCount++
		}
	}

	if len(unhealthy) > 0 {
		return Unhealthy(
			fmt.Sprintf("%d check(s) failed", len(unhealthy)),
			map[string]any{
				"total":         len(checks),
				"unhealthy":     len(unhealthy),
				"degraded":      len(degraded),
				"healthy":       healthyCount,
				"failed_checks": unhealthy,
			},
		)
	}

	if len(degraded) > 0 {
		return Degraded(
			fmt.Sprintf("%d check(s) degraded", len(degraded)),
			map[string]any{
				"total":           len(checks),
				"degraded":        len(degraded),
				"healthy":         healthyCount,
				"degraded_checks": degraded,
			},
		)
	}

	return Healthy(fmt.Sprintf("all %d check(s) passed", len(checks)))
}
