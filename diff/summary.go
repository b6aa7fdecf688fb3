package diff

import (
	"fmt"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// ChangeType classifies a library in a summary.
type ChangeType string

const (
	ChangeAdded    ChangeType = "ADDED"
	ChangeDeleted  ChangeType = "DELETED"
	ChangeModified ChangeType = "MODIFIED"
)

// LibrarySummary is the lightweight classification of one library.
type LibrarySummary struct {
	Ref         string     `json:"ref"`
	Name        string     `json:"name"`
	ChangeType  ChangeType `json:"changeType"`
	OldRevision *string    `json:"oldRevision"`
	NewRevision *string    `json:"newRevision"`
	HasChanges  bool       `json:"hasChanges"`
}

// Summaries groups library summaries by classification.
type Summaries struct {
	Added    []LibrarySummary `json:"added"`
	Deleted  []LibrarySummary `json:"deleted"`
	Modified []LibrarySummary `json:"modified"`
}

// SummarizeLibraries classifies every library of fv and sv without running a
// structural diff. Libraries present in both versions are MODIFIED; their
// HasChanges flag compares the library scalar fields only.
func (c *Comparer) SummarizeLibraries(fv, sv *snapshot.Version) (*Summaries, error) {
	if fv == nil || sv == nil {
		return nil, differr.NewInvalidArgument(opSummarizeLibraries,
			fmt.Errorf("%w: versions are required", differr.ErrInvalidRequest))
	}

	s := &Summaries{
		Added:    []LibrarySummary{},
		Deleted:  []LibrarySummary{},
		Modified: []LibrarySummary{},
	}
	for _, ref := range sv.LibraryRefs() {
		if fv.Library(ref) != nil {
			continue
		}
		lib := sv.Library(ref)
		s.Added = append(s.Added, LibrarySummary{
			Ref:         lib.Ref,
			Name:        lib.Name,
			ChangeType:  ChangeAdded,
			NewRevision: ptr(lib.Revision),
			HasChanges:  true,
		})
	}
	for _, ref := range fv.LibraryRefs() {
		old := fv.Library(ref)
		lib := sv.Library(ref)
		if lib == nil {
			s.Deleted = append(s.Deleted, LibrarySummary{
				Ref:         old.Ref,
				Name:        old.Name,
				ChangeType:  ChangeDeleted,
				OldRevision: ptr(old.Revision),
				HasChanges:  true,
			})
			continue
		}
		s.Modified = append(s.Modified, LibrarySummary{
			Ref:         lib.Ref,
			Name:        lib.Name,
			ChangeType:  ChangeModified,
			OldRevision: ptr(old.Revision),
			NewRevision: ptr(lib.Revision),
			HasChanges:  scalarsDiffer(old, lib),
		})
	}
	return s, nil
}

func scalarsDiffer(a, b *snapshot.Library) bool {
	return a.Revision != b.Revision ||
		a.Ref != b.Ref ||
		a.Name != b.Name ||
		a.Desc != b.Desc ||
		a.Filename != b.Filename ||
		a.Enabled != b.Enabled
}

func ptr(s string) *string {
	return &s
}
