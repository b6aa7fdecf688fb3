package changelog

import (
	"slices"

	"github.com/zero-day-ai/libdiff/graph"
)

const timestampField = "timestamp"

// Option configures Compact.
type Option func(*options)

type options struct {
	filter *Filter
}

// WithFilter restricts the report to the entries accepted by f.
func WithFilter(f *Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// Items returns the changelog items of the given graphs in order.
func Items(graphs ...*graph.Graph) []*graph.ChangelogItem {
	var items []*graph.ChangelogItem
	for _, g := range graphs {
		if g != nil {
			items = append(items, g.Changelog...)
		}
	}
	return items
}

// ListItems returns the changelog items of every graph in gl.
func ListItems(gl *graph.GraphList) []*graph.ChangelogItem {
	var items []*graph.ChangelogItem
	gl.Each(func(_ string, g *graph.Graph) {
		items = append(items, g.Changelog...)
	})
	return items
}

type seenKey struct {
	category string
	ref      string
}

// Compact projects items into a Report.
func Compact(items []*graph.ChangelogItem, opts ...Option) (*Report, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	buckets := make(map[string][]Entry, len(Categories))
	seen := make(map[seenKey]bool)
	for _, item := range items {
		if !slices.Contains(Categories, item.Element) {
			continue
		}
		key := seenKey{item.Element, item.ElementRef}
		if seen[key] {
			continue
		}
		seen[key] = true

		fields := item.Changes.Fields()
		if item.Action == graph.ActionEdit && isNoise(fields) {
			continue
		}

		entry := Entry{Ref: item.ElementRef, Action: item.Action, Changes: fields}
		if o.filter != nil {
			ok, err := o.filter.Match(item.Element, entry)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		buckets[item.Element] = append(buckets[item.Element], entry)
	}

	r := newReport()
	for _, category := range Categories {
		if entries := buckets[category]; len(entries) > 0 {
			r.categories.Set(category, entries)
		}
	}
	return r, nil
}

// isNoise reports whether a modification carries no meaningful change.
func isNoise(fields []string) bool {
	return len(fields) == 0 || (len(fields) == 1 && fields[0] == timestampField)
}
