package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/mvp-joe/project-glean/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	store, err := NewStore(4, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	report := &scanner.Report{ID: "scan-1", Root: "/w"}
	require.NoError(t, store.Put(report))

	got, err := store.Get("scan-1")
	require.NoError(t, err)
	assert.Same(t, report, got)
}

func TestStore_UnknownID(t *testing.T) {
	t.Parallel()

	store, err := NewStore(0, 0)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownScan)
}

func TestStore_IgnoresReportsWithoutID(t *testing.T) {
	t.Parallel()

	store, err := NewStore(4, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Put(nil))
	assert.NoError(t, store.Put(&scanner.Report{}))

	_, err = store.Get("")
	assert.ErrorIs(t, err, ErrUnknownScan)
}

func TestStore_Expires(t *testing.T) {
	t.Parallel()

	// Expiration has one-second granularity.
	store, err := NewStore(4, 2*time.Second)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(&scanner.Report{ID: "short"}))
	_, err = store.Get("short")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := store.Get("short")
		return err != nil
	}, 6*time.Second, 50*time.Millisecond)
}

func TestStore_SmallCapacitiesAdmitReports(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{1, 2, 4, 8, 9} {
		t.Run(fmt.Sprintf("capacity %d", capacity), func(t *testing.T) {
			store, err := NewStore(capacity, time.Minute)
			require.NoError(t, err)
			defer store.Close()

			report := &scanner.Report{ID: "scan"}
			require.NoError(t, store.Put(report))

			got, err := store.Get("scan")
			require.NoError(t, err)
			assert.Same(t, report, got)
		})
	}
}

func TestStore_KeepsRecentReports(t *testing.T) {
	t.Parallel()

	store, err := NewStore(1, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	for i := range 3 {
		require.NoError(t, store.Put(&scanner.Report{ID: fmt.Sprintf("scan-%d", i)}))
	}

	_, err = store.Get("scan-2")
	assert.NoError(t, err)
}
