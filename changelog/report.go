package changelog

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/zero-day-ai/libdiff/graph"
)

// Categories lists the surfaced changelog elements in report order.
var Categories = []string{
	"RiskPattern",
	"Component Definitions",
	"Supported Standards",
	"Usecases",
	"Threats",
	"Weaknesses",
	"Controls",
	"Rules",
}

// Entry is one surfaced change.
type Entry struct {
	Ref     string       `json:"ref"`
	Action  graph.Action `json:"action"`
	Changes []string     `json:"changes"`
}

// Report maps category to its entries in Categories order.
type Report struct {
	categories *orderedmap.OrderedMap[string, []Entry]
}

func newReport() *Report {
	return &Report{categories: orderedmap.New[string, []Entry]()}
}

// Get returns the entries of a category.
func (r *Report) Get(category string) ([]Entry, bool) {
	return r.categories.Get(category)
}

// Categories returns the categories present in the report, in order.
func (r *Report) Categories() []string {
	out := make([]string, 0, r.categories.Len())
	for pair := r.categories.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of categories in the report.
func (r *Report) Len() int {
	return r.categories.Len()
}

// MarshalJSON renders the report as an object keyed by category.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.categories)
}
