package granitectl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// execTrailerRE matches the "(N row(s))" line the legacy table renderer
// appends after the data rows.
var execTrailerRE = regexp.MustCompile(`^\((\d+) row\(s\)\)$`)

// parseLegacyExecOutput converts the legacy table renderer's text into the
// canonical QueryResult. elapsed is the wall-clock time of the invocation
// that produced the text; the legacy format carries no timing of its own.
//
// rowsAffected is only ever recorded when greater than zero. A count of
// exactly zero still shows up in the status message ("0 row(s)") but never as
// an affected-row count; the engine's legacy renderer reports it the same way.
func parseLegacyExecOutput(raw string, elapsed time.Duration) (*QueryResult, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return nil, parseErrorf("no output")
	}

	res := &QueryResult{
		Columns:    []string{},
		Rows:       [][]string{},
		DurationMS: uint64(elapsed.Milliseconds()),
	}

	// A single non-table line is a bare status message, e.g. an insert or
	// update acknowledgement ("3 row(s) inserted").
	if len(lines) == 1 && !strings.HasPrefix(lines[0], "(") {
		res.Message = lines[0]
		if n, ok := leadingCount(lines[0]); ok && n > 0 {
			res.RowsAffected = &n
		}
		return res, nil
	}

	haveTrailer := false
	if m := execTrailerRE.FindStringSubmatch(lines[len(lines)-1]); m != nil {
		n, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return nil, parseErrorf("invalid row count %q", m[1])
		}
		haveTrailer = true
		lines = lines[:len(lines)-1]
		if n > 0 {
			res.RowsAffected = &n
		}
		res.Message = fmt.Sprintf("%d row(s)", n)
	}

	// What remains must be at least a header line and a separator line.
	if len(lines) < 2 {
		return nil, parseErrorf("missing header or separator line")
	}
	res.Columns = splitCells(lines[0])
	if len(res.Columns) == 0 {
		return nil, parseErrorf("no columns in header")
	}

	for _, line := range lines[2:] {
		cells := splitCells(line)
		if len(cells) != len(res.Columns) {
			return nil, parseErrorf("row column count mismatch: got %d cells, want %d", len(cells), len(res.Columns))
		}
		res.Rows = append(res.Rows, cells)
	}

	if !haveTrailer {
		if n := uint64(len(res.Rows)); n > 0 {
			res.RowsAffected = &n
		}
		if res.Message == "" {
			res.Message = fmt.Sprintf("%d row(s)", len(res.Rows))
		}
	}
	return res, nil
}

// splitCells splits a legacy table line on the column separator, trimming
// each cell.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// leadingCount extracts a leading run of decimal digits from a status
// message.
func leadingCount(s string) (uint64, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
