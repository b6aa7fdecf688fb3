// Package changelog reduces the raw changelog items of one or more
// comparison graphs into a compact report for export.
//
// Only these categories are surfaced, in this order: RiskPattern,
// Component Definitions, Supported Standards, Usecases, Threats,
// Weaknesses, Controls and Rules. Within a category the first item seen
// for a ref wins. Modified items with no changes, or whose only change is
// the "timestamp" field, are dropped as noise. Categories left empty are
// omitted.
//
// A Filter compiled from a CEL expression can further restrict the report.
// The expression sees the variables category, ref, action and changes (a
// list of changed field names) and must evaluate to a bool:
//
//	f, err := changelog.NewFilter(`category == "Threats" && action != "D"`)
package changelog
