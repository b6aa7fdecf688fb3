// Package health checks the dependencies a libdiff deployment reads from.
//
// Each check returns a Status. Checks never return errors; failures are
// reported as unhealthy statuses with details.
//
//   - DirCheck: a snapshot directory exists and is readable
//   - PingCheck: a networked store answers a ping
//   - VersionCheck: a Source can load the given version ids
//   - PropertyCheck: a runtime property source resolves
//   - Combine: aggregate several checks into one Status
//
// # Usage Example
//
//	status := health.Combine(
//	    health.DirCheck("snapshots"),
//	    health.VersionCheck(ctx, src, "2024-03", "2024-06"),
//	)
//	if status.IsUnhealthy() {
//	    log.Fatal(status.Message)
//	}
package health
