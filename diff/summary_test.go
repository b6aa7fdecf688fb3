package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
	"github.com/zero-day-ai/libdiff/snapshot/snapshottest"
)

func TestSummarizeLibraries(t *testing.T) {
	fv, sv := snapshottest.Pair()

	got, err := newComparer(t).SummarizeLibraries(fv, sv)
	require.NoError(t, err)

	want := &Summaries{
		Added: []LibrarySummary{{
			Ref: "lib-new", Name: "New library", ChangeType: ChangeAdded,
			NewRevision: ptr("1"), HasChanges: true,
		}},
		Deleted: []LibrarySummary{{
			Ref: "lib-old", Name: "Old library", ChangeType: ChangeDeleted,
			OldRevision: ptr("7"), HasChanges: true,
		}},
		Modified: []LibrarySummary{{
			Ref: snapshottest.LibraryRef, Name: "Library A", ChangeType: ChangeModified,
			OldRevision: ptr("3"), NewRevision: ptr("4"), HasChanges: true,
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SummarizeLibraries() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeLibraries_Unchanged(t *testing.T) {
	fv, sv := snapshottest.NewVersion("v1"), snapshottest.NewVersion("v2")
	// Content changes below the library scalars are not considered.
	delete(sv.Library(snapshottest.LibraryRef).RiskPatterns, "RP2")

	got, err := newComparer(t).SummarizeLibraries(fv, sv)
	require.NoError(t, err)

	assert.Empty(t, got.Added)
	assert.Empty(t, got.Deleted)
	require.Len(t, got.Modified, 1)
	assert.False(t, got.Modified[0].HasChanges)
}

func TestSummarizeLibraries_InvalidArguments(t *testing.T) {
	_, err := newComparer(t).SummarizeLibraries(snapshot.NewVersion("v1"), nil)
	assert.True(t, differr.IsInvalidArgument(err))
}

func TestRelationsReport(t *testing.T) {
	fv, sv := snapshottest.Pair()
	sv.Controls["C9"] = &snapshot.Control{Ref: "C9", Name: "Captcha"}
	sv.Library(snapshottest.LibraryRef).Relations["r3"] = &snapshot.Relation{
		RiskPattern: "RP1", UseCase: "UC1", Threat: "T1", Control: "C9", Mitigation: "10",
	}

	report, err := newComparer(t).RelationsReport(fv, sv)
	require.NoError(t, err)

	base := ExtendedRelation{
		LibraryRef:     snapshottest.LibraryRef,
		RiskPatternRef: "RP1",
		UseCaseRef:     "UC1",
		ThreatRef:      "T1",
	}
	withControl := func(weakness, control, mitigation string) ExtendedRelation {
		r := base
		r.WeaknessRef, r.ControlRef, r.Mitigation = weakness, control, mitigation
		return r
	}

	want := &RelationsReport{
		Added: []ExtendedRelation{
			withControl("", "C9", "10"),
			withControl("W1", "C1", "60"),
		},
		Deleted: []ExtendedRelation{
			withControl("W1", "C1", "50"),
		},
		NewCountermeasures: map[string][]ExtendedRelation{
			"C9": {withControl("", "C9", "10")},
		},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("RelationsReport() mismatch (-want +got):\n%s", diff)
	}
}

func TestRelationsReport_Identical(t *testing.T) {
	report, err := newComparer(t).RelationsReport(snapshottest.NewVersion("v1"), snapshottest.NewVersion("v2"))
	require.NoError(t, err)

	assert.Empty(t, report.Added)
	assert.Empty(t, report.Deleted)
	assert.Empty(t, report.NewCountermeasures)
}
