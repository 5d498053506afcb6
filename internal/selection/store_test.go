package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pipeline/internal/sheets"
	"github.com/jonathan/resume-pipeline/internal/types"
)

func testEntries() []types.ScoredItemEntry {
	return []types.ScoredItemEntry{
		{
			UniqueID:         "ITEM-0001",
			SectionTitle:     types.SectionExperience,
			ItemIdentifier:   "Acme Corp",
			OriginalText:     "Built the ingestion pipeline",
			RelevanceScore:   0.85,
			MatchingKeywords: []string{"pipeline", "data"},
			Justification:    "Directly matches the data engineering responsibilities",
		},
		{
			UniqueID:       "ITEM-0002",
			SectionTitle:   types.SectionExperience,
			ItemIdentifier: "Acme Corp",
			OriginalText:   "Organized the office holiday party",
			RelevanceScore: 0.05,
			Justification:  "Unrelated to the role",
		},
	}
}

func newTestStore(t *testing.T) (*Store, *sheets.Memory) {
	t.Helper()
	mem := sheets.NewMemory()
	store := NewStore(mem, "Selection")
	require.NoError(t, store.Initialize())
	return store, mem
}

func TestStore_RecordAndReadBack(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Record(testEntries()))

	entries, err := store.AllEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "ITEM-0001", entries[0].UniqueID)
	assert.Equal(t, types.SectionExperience, entries[0].SectionTitle)
	assert.Equal(t, "Acme Corp", entries[0].ItemIdentifier)
	assert.InDelta(t, 0.85, entries[0].RelevanceScore, 0.0001)
	assert.Equal(t, []string{"pipeline", "data"}, entries[0].MatchingKeywords)
	assert.False(t, entries[0].UserSelected)
	assert.Empty(t, entries[0].TailoredText)
}

func TestStore_Record_AppendsAfterExisting(t *testing.T) {
	store, _ := newTestStore(t)
	entries := testEntries()
	require.NoError(t, store.Record(entries[:1]))
	require.NoError(t, store.Record(entries[1:]))

	all, err := store.AllEntries()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ITEM-0002", all[1].UniqueID)
}

func TestStore_Initialize_DropsPreviousRun(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Record(testEntries()))

	require.NoError(t, store.Initialize())
	entries, err := store.AllEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_MarkTailored(t *testing.T) {
	store, mem := newTestStore(t)
	require.NoError(t, store.Record(testEntries()))

	// Simulate the human review: mark the first row selected.
	rows, err := mem.ReadAllRows("Selection")
	require.NoError(t, err)
	rows[1][7] = "yes"
	require.NoError(t, mem.WriteRows("Selection", rows[1:2], 2))

	updated, err := store.MarkTailored("ITEM-0001", "Engineered a fault-tolerant ingestion pipeline")
	require.NoError(t, err)
	assert.True(t, updated)

	entries, err := store.AllEntries()
	require.NoError(t, err)
	assert.Equal(t, "Engineered a fault-tolerant ingestion pipeline", entries[0].TailoredText)
	assert.True(t, entries[0].UserSelected)
}

func TestStore_MarkTailored_SkipsUnselectedRow(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Record(testEntries()))

	updated, err := store.MarkTailored("ITEM-0002", "rewrite")
	require.NoError(t, err)
	assert.False(t, updated)

	entries, err := store.AllEntries()
	require.NoError(t, err)
	assert.Empty(t, entries[1].TailoredText)
}

func TestStore_MarkTailored_UnknownID(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Record(testEntries()))

	_, err := store.MarkTailored("ITEM-9999", "rewrite")
	require.Error(t, err)

	var storeErr *Error
	assert.ErrorAs(t, err, &storeErr)
}

func TestStore_MarkTailored_MissingColumns(t *testing.T) {
	// A header that lost its trailing columns must be rejected rather than
	// written through, which would clobber whichever cell maps to index zero.
	mem := sheets.NewMemory()
	require.NoError(t, mem.CreateOrReplaceTable("Selection", Header[:7]))
	require.NoError(t, mem.WriteRows("Selection", [][]string{
		{"ITEM-0001", "EXPERIENCE", "Acme Corp", "Built the ingestion pipeline", "0.8500", "", "Strong match"},
	}, 2))

	store := NewStore(mem, "Selection")
	updated, err := store.MarkTailored("ITEM-0001", "Engineered the ingestion pipeline")
	require.Error(t, err)
	assert.False(t, updated)
	assert.Contains(t, err.Error(), "Selected (Y/N)")

	rows, err := mem.ReadAllRows("Selection")
	require.NoError(t, err)
	assert.Equal(t, "ITEM-0001", rows[1][0])
}

func TestStore_AllEntries_SkipsBlankRows(t *testing.T) {
	store, mem := newTestStore(t)
	require.NoError(t, store.Record(testEntries()))

	// A stray blank row in the middle of the sheet is ignored.
	rows, err := mem.ReadAllRows("Selection")
	require.NoError(t, err)
	require.NoError(t, mem.WriteRows("Selection", [][]string{{""}, rows[2]}, 2))

	entries, err := store.AllEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ITEM-0002", entries[0].UniqueID)
}

func TestStore_SelectionFlagSpellings(t *testing.T) {
	tests := []struct {
		flag     string
		selected bool
	}{
		{"YES", true},
		{"true", true},
		{"1", true},
		{"x", true},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("flag "+tt.flag, func(t *testing.T) {
			store, mem := newTestStore(t)
			require.NoError(t, store.Record(testEntries()[:1]))

			rows, err := mem.ReadAllRows("Selection")
			require.NoError(t, err)
			rows[1][7] = tt.flag
			require.NoError(t, mem.WriteRows("Selection", rows[1:2], 2))

			entries, err := store.AllEntries()
			require.NoError(t, err)
			assert.Equal(t, tt.selected, entries[0].UserSelected)
		})
	}
}
