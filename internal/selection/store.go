// Package selection manages the staging table correlating original resume
// items, relevance scores, human selection flags and tailored rewrites across
// the three pipeline stages.
package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/sheets"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// Column headers of the selection table, in wire order.
const (
	colUniqueID      = "Unique ID"
	colSection       = "Section"
	colIdentifier    = "Item Identifier"
	colOriginalText  = "Original Text"
	colScore         = "Relevance Score"
	colKeywords      = "Matching Keywords"
	colJustification = "Justification"
	colSelected      = "Selected (Y/N)"
	colTailoredText  = "Tailored Text"
)

// Header is the selection table's header row.
var Header = []string{
	colUniqueID, colSection, colIdentifier, colOriginalText,
	colScore, colKeywords, colJustification, colSelected, colTailoredText,
}

// keywordSeparator joins matching keywords into a single cell.
const keywordSeparator = ", "

// Store reads and writes ScoredItemEntry rows in a tabular table.
// Creation is append-only in stage 1; stage 2 performs partial updates of the
// tailored-text column; stage 3 reads the table in full.
type Store struct {
	tab   sheets.Store
	table string
}

// NewStore creates a selection store over the named table.
func NewStore(tab sheets.Store, table string) *Store {
	return &Store{tab: tab, table: table}
}

// Initialize recreates the selection table with just the header row, dropping
// any previous run's contents.
func (s *Store) Initialize() error {
	if err := s.tab.CreateOrReplaceTable(s.table, Header); err != nil {
		return &Error{Message: "failed to initialize selection table", Cause: err}
	}
	return nil
}

// Record appends entries after the existing rows. Entries scored before a
// mid-batch failure stay written, enabling manual resumption.
func (s *Store) Record(entries []types.ScoredItemEntry) error {
	if len(entries) == 0 {
		return nil
	}

	existing, err := s.tab.ReadAllRows(s.table)
	if err != nil {
		return &Error{Message: "failed to read selection table", Cause: err}
	}

	rows := make([][]string, len(entries))
	for i, entry := range entries {
		rows[i] = entryToRow(entry)
	}

	if err := s.tab.WriteRows(s.table, rows, len(existing)+1); err != nil {
		return &Error{Message: "failed to append selection rows", Cause: err}
	}
	return nil
}

// MarkTailored writes tailored text into the row with the given unique ID.
// Only rows the user marked as selected are touched; the returned bool reports
// whether an update happened.
func (s *Store) MarkTailored(uniqueID, text string) (bool, error) {
	rows, err := s.tab.ReadAllRows(s.table)
	if err != nil {
		return false, &Error{Message: "failed to read selection table", Cause: err}
	}
	if len(rows) == 0 {
		return false, &Error{Message: "selection table is empty"}
	}

	idx := headerIndex(rows[0])
	idCol, ok := idx[colUniqueID]
	if !ok {
		return false, &Error{Message: "selection table has no Unique ID column"}
	}
	selectedCol, ok := idx[colSelected]
	if !ok {
		return false, &Error{Message: "selection table has no Selected (Y/N) column"}
	}
	tailoredCol, ok := idx[colTailoredText]
	if !ok {
		return false, &Error{Message: "selection table has no Tailored Text column"}
	}

	for i, row := range rows[1:] {
		if cellAt(row, idCol) != uniqueID {
			continue
		}
		if !types.ParseSelectionFlag(cellAt(row, selectedCol)) {
			return false, nil
		}

		for len(row) <= tailoredCol {
			row = append(row, "")
		}
		row[tailoredCol] = text

		if err := s.tab.WriteRows(s.table, [][]string{row}, i+2); err != nil {
			return false, &Error{Message: "failed to write tailored text", Cause: err}
		}
		return true, nil
	}

	return false, &Error{Message: fmt.Sprintf("no selection row with unique ID %s", uniqueID)}
}

// AllEntries reads every row of the selection table.
func (s *Store) AllEntries() ([]types.ScoredItemEntry, error) {
	rows, err := s.tab.ReadAllRows(s.table)
	if err != nil {
		return nil, &Error{Message: "failed to read selection table", Cause: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	var entries []types.ScoredItemEntry
	for _, row := range rows[1:] {
		if entry, ok := rowToEntry(row, idx); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// headerIndex maps header names to column positions at read time; positions,
// not names, are the wire contract within a row.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func entryToRow(entry types.ScoredItemEntry) []string {
	selected := ""
	if entry.UserSelected {
		selected = "YES"
	}
	return []string{
		entry.UniqueID,
		string(entry.SectionTitle),
		entry.ItemIdentifier,
		entry.OriginalText,
		strconv.FormatFloat(entry.RelevanceScore, 'f', 4, 64),
		strings.Join(entry.MatchingKeywords, keywordSeparator),
		entry.Justification,
		selected,
		entry.TailoredText,
	}
}

func rowToEntry(row []string, idx map[string]int) (types.ScoredItemEntry, bool) {
	uniqueID := cellAt(row, col(idx, colUniqueID))
	if uniqueID == "" {
		return types.ScoredItemEntry{}, false
	}

	score, err := strconv.ParseFloat(cellAt(row, col(idx, colScore)), 64)
	if err != nil {
		score = 0
	}

	var keywords []string
	if raw := cellAt(row, col(idx, colKeywords)); raw != "" {
		for _, kw := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(kw); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
	}

	return types.ScoredItemEntry{
		UniqueID:         uniqueID,
		SectionTitle:     types.SectionTitle(cellAt(row, col(idx, colSection))),
		ItemIdentifier:   cellAt(row, col(idx, colIdentifier)),
		OriginalText:     cellAt(row, col(idx, colOriginalText)),
		RelevanceScore:   score,
		MatchingKeywords: keywords,
		Justification:    cellAt(row, col(idx, colJustification)),
		UserSelected:     types.ParseSelectionFlag(cellAt(row, col(idx, colSelected))),
		TailoredText:     cellAt(row, col(idx, colTailoredText)),
	}, true
}

func col(idx map[string]int, name string) int {
	if i, ok := idx[name]; ok {
		return i
	}
	return -1
}
