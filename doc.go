// Package libdiff compares snapshots of security-content libraries and
// reports what changed between two versions.
//
// A library bundles component definitions, risk patterns, rules, standards
// and a relation table linking risk patterns to usecases, threats,
// weaknesses and controls. Libraries are shipped in versions, and each
// version also carries the global threat, weakness, control, usecase,
// reference and category tables its libraries point into.
//
// # Comparisons
//
// A Service loads versions through a store.Source and offers:
//
//   - CompareLibraries: diff two libraries, possibly of different versions
//   - CompareLibrarySpecific: diff one library ref across two versions
//   - CompareVersions: diff every library of two versions
//   - CompactChangelog: flatten changelog items into a per-category report
//   - SummarizeLibraries: added, deleted and modified libraries
//   - RelationsChangelog: added and deleted relations plus new countermeasures
//
// Library comparisons produce a graph.Graph: a tree of NEW, MODIFIED and
// DELETED nodes rooted at the library, plus a flat changelog.
//
// # Getting Started
//
//	src, err := store.NewFileSource("snapshots")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	svc, err := libdiff.New(src, libdiff.WithShowMitigations(true))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := svc.CompactChangelog(ctx, libdiff.Request{
//		FirstVersion:  "2024-03",
//		SecondVersion: "2024-06",
//	})
//
// # Configuration
//
// The cmd/libdiff command reads a YAML file through the config package.
// Mitigation visibility can be overridden at runtime by a
// config.PropertySource such as config.EtcdProperties.
//
// # Observability
//
// Comparisons log through log/slog and emit OpenTelemetry spans and
// metrics when WithTracer and WithMeter are given.
package libdiff
