package scanner

// Test Plan for Aggregate:
// - Occurrences keep file order, then within-file order
// - Failed files become SkippedFile entries and contribute nothing
// - Categories with zero matches are StatusEmpty, others StatusReady
// - Blank occurrence text is discarded
// - Occurrences of unrequested categories are ignored
// - Report.Set returns a pending set for categories that were not scanned
// - EmptyReason distinguishes an empty corpus from no matches

import (
	"errors"
	"testing"

	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_PreservesFileThenMatchOrder(t *testing.T) {
	t.Parallel()

	results := []FileResult{
		{Path: "a", Occurrences: []Occurrence{
			{Path: "a", Category: rules.Comment, Text: "a1"},
			{Path: "a", Category: rules.Todo, Text: "todo a", Line: 3},
			{Path: "a", Category: rules.Comment, Text: "a2"},
		}},
		{Path: "b", Err: errors.New("boom")},
		{Path: "c", Occurrences: []Occurrence{
			{Path: "c", Category: rules.Comment, Text: "c1"},
			{Path: "c", Category: rules.Comment, Text: "   "},
		}},
	}

	sets, skipped := Aggregate(results)

	comments := sets[rules.Comment]
	assert.Equal(t, StatusReady, comments.Status)
	require.Len(t, comments.Occurrences, 3)
	assert.Equal(t, "a1", comments.Occurrences[0].Text)
	assert.Equal(t, "a2", comments.Occurrences[1].Text)
	assert.Equal(t, "c1", comments.Occurrences[2].Text)

	assert.Equal(t, StatusReady, sets[rules.Todo].Status)
	assert.Equal(t, StatusEmpty, sets[rules.Log].Status)
	assert.Empty(t, sets[rules.Log].Occurrences)

	require.Len(t, skipped, 1)
	assert.Equal(t, "b", skipped[0].Path)
	assert.Equal(t, "boom", skipped[0].Reason)
}

func TestAggregate_OnlyRequestedCategories(t *testing.T) {
	t.Parallel()

	results := []FileResult{{Path: "a", Occurrences: []Occurrence{
		{Category: rules.Comment, Text: "x"},
		{Category: rules.Log, Text: "y"},
	}}}

	sets, _ := Aggregate(results, rules.Log)
	require.Len(t, sets, 1)
	assert.Equal(t, []Occurrence{{Category: rules.Log, Text: "y"}}, sets[rules.Log].Occurrences)
}

func TestAggregate_NoFiles(t *testing.T) {
	t.Parallel()

	sets, skipped := Aggregate(nil)
	assert.Empty(t, skipped)
	for _, c := range rules.Categories {
		assert.Equal(t, StatusEmpty, sets[c].Status, c)
	}
}

func TestReport_SetAndEmptyReason(t *testing.T) {
	t.Parallel()

	sets, _ := Aggregate(nil, rules.Todo)
	empty := &Report{Sets: sets}

	assert.Equal(t, StatusPending, empty.Set(rules.Comment).Status)
	assert.NoError(t, EmptyReason(empty, empty.Set(rules.Comment)))
	assert.ErrorIs(t, EmptyReason(empty, empty.Set(rules.Todo)), ErrCorpusEmpty)

	withFiles := &Report{Files: []string{"a"}, Sets: sets}
	assert.ErrorIs(t, EmptyReason(withFiles, withFiles.Set(rules.Todo)), ErrNoOccurrences)
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "empty", StatusEmpty.String())
	assert.Equal(t, "ready", StatusReady.String())
}
