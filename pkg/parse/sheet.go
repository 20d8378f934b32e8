package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// stancePattern matches one stance time range, e.g. "1.58-2.03". Cells that
// do not match (empty slots, stray integers) are skipped, as in the source
// spreadsheets.
var stancePattern = regexp.MustCompile(`^([1-9][0-9.]*)-([1-9][0-9.]*)$`)

// Entry is one row of the guiding spreadsheet: a single trial recording of
// one foot, with its stance time ranges.
type Entry struct {
	Name      string // raw entry name, e.g. "S4 fast walking 1"
	Subject   string // "S4"
	Condition string // "fast walking"
	Trial     string // "trial 1"
	Foot      string // "L" or "R"
	Stances   []string
}

// Guide is the parsed guiding spreadsheet listing every trial of the
// experiment.
type Guide struct {
	Entries []Entry
}

// entryPattern builds the validation pattern for entry names against the
// configured condition list: "S<N> <condition> <trial>".
func entryPattern(conditions []string) (*regexp.Regexp, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("condition list is empty")
	}
	quoted := make([]string, len(conditions))
	for i, c := range conditions {
		quoted[i] = regexp.QuoteMeta(c)
	}
	return regexp.Compile(`^(S[1-9][0-9]*) (` + strings.Join(quoted, "|") + `) ([1-9][0-9]*)$`)
}

// ReadGuide loads the guiding spreadsheet and validates every entry name
// against the condition list. The first column holds the entry name, the
// "sideFoot" column the foot, and every column from "stance phase 1" onward
// one stance time range.
func ReadGuide(path string, conditions []string) (*Guide, error) {
	pattern, err := entryPattern(conditions)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening guiding file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("guiding file has no data rows")
	}

	footCol, stanceCol, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	guide := &Guide{}
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		name := strings.TrimSpace(row[0])
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("row %d: invalid asc entry name %q", i+2, name)
		}

		entry := Entry{
			Name:      name,
			Subject:   m[1],
			Condition: m[2],
			Trial:     "trial " + m[3],
		}
		if footCol < len(row) {
			entry.Foot = strings.TrimSpace(row[footCol])
		}
		for c := stanceCol; c < len(row); c++ {
			entry.Stances = append(entry.Stances, strings.TrimSpace(row[c]))
		}
		guide.Entries = append(guide.Entries, entry)
	}
	return guide, nil
}

// locateColumns finds the sideFoot column and the first stance-phase column
// in the header row.
func locateColumns(header []string) (footCol, stanceCol int, err error) {
	footCol, stanceCol = -1, -1
	for i, h := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), "sideFoot"):
			footCol = i
		case stanceCol == -1 && strings.HasPrefix(strings.ToLower(strings.TrimSpace(h)), "stance phase"):
			stanceCol = i
		}
	}
	if footCol == -1 {
		return 0, 0, fmt.Errorf("guiding file has no sideFoot column")
	}
	if stanceCol == -1 {
		return 0, 0, fmt.Errorf("guiding file has no stance phase columns")
	}
	return footCol, stanceCol, nil
}

// parseStance extracts the start/end times from one stance cell. Cells that
// do not carry a valid range report ok == false and are skipped.
func parseStance(s string) (start, end float64, ok bool) {
	m := stancePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}
	start, err1 := strconv.ParseFloat(m[1], 64)
	end, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || start >= end {
		return 0, 0, false
	}
	return start, end, true
}
