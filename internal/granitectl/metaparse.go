package granitectl

import (
	"regexp"
	"strconv"
	"strings"
)

// Legacy dump grammar markers. Indentation is significant: section markers
// are indented two spaces, column entries use a two-space dash prefix, and
// index or foreign-key entries a four-space one.
const (
	noTablesSentinel  = "No tables defined"
	tableHeaderPrefix = "Table "
	indexesMarker     = "  Indexes:"
	foreignKeysMarker = "  Foreign Keys:"
	columnEntryPrefix = "  - "
	nestedEntryPrefix = "    - "
)

var tableHeaderRE = regexp.MustCompile(`^Table (.+) \((\d+) row\(s\)\)$`)

// metaSection is the dump section currently being parsed, scoped to the
// table being built.
type metaSection int

const (
	sectionColumns metaSection = iota
	sectionIndexes
	sectionForeignKeys
)

// parseLegacyDump converts the legacy indented schema dump into a Schema.
// It is a single-pass state machine: a table header opens an accumulator,
// section markers switch what the dash entries below them mean, and
// unrecognized lines are skipped so newer engines can add output without
// breaking older frontends.
//
// Unlike exec results, a table's row count of zero is stored verbatim; the
// engine reports it as a real count, not an affected-rows figure.
func parseLegacyDump(raw string) (*Schema, error) {
	schema := &Schema{Tables: []Table{}}
	var current *Table
	section := sectionColumns

	flush := func() {
		if current == nil {
			return
		}
		if len(current.Indexes) == 0 {
			current.Indexes = nil
		}
		if len(current.ForeignKeys) == 0 {
			current.ForeignKeys = nil
		}
		schema.Tables = append(schema.Tables, *current)
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line == noTablesSentinel {
			return &Schema{Tables: []Table{}}, nil
		}
		if strings.HasPrefix(line, tableHeaderPrefix) {
			name, count, err := parseTableHeader(line)
			if err != nil {
				return nil, err
			}
			flush()
			current = &Table{Name: name, RowCount: count, Columns: []Column{}}
			section = sectionColumns
			continue
		}
		if current == nil {
			// Markers and entries are only meaningful inside a table block.
			continue
		}
		switch line {
		case indexesMarker:
			section = sectionIndexes
			continue
		case foreignKeysMarker:
			section = sectionForeignKeys
			continue
		}
		switch section {
		case sectionColumns:
			if !strings.HasPrefix(line, columnEntryPrefix) {
				continue
			}
			col, err := parseColumnEntry(strings.TrimPrefix(line, columnEntryPrefix))
			if err != nil {
				return nil, err
			}
			current.Columns = append(current.Columns, col)
		case sectionIndexes:
			if !strings.HasPrefix(line, nestedEntryPrefix) {
				continue
			}
			if idx, ok := parseIndexEntry(strings.TrimPrefix(line, nestedEntryPrefix)); ok {
				current.Indexes = append(current.Indexes, idx)
			}
		case sectionForeignKeys:
			if !strings.HasPrefix(line, nestedEntryPrefix) {
				continue
			}
			if fk, ok := parseForeignKeyEntry(strings.TrimPrefix(line, nestedEntryPrefix)); ok {
				current.ForeignKeys = append(current.ForeignKeys, fk)
			}
		}
	}
	flush()
	return schema, nil
}

// parseTableHeader splits "Table <name> (<count> row(s))" into its parts.
func parseTableHeader(line string) (string, uint64, error) {
	m := tableHeaderRE.FindStringSubmatch(line)
	if m == nil {
		return "", 0, parseErrorf("malformed table header %q", line)
	}
	count, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return "", 0, parseErrorf("invalid row count in table header %q", line)
	}
	return m[1], count, nil
}

// parseColumnEntry parses "<name> <type> [NOT NULL] [PRIMARY KEY]". The flag
// markers may appear in either order; presence anywhere in the entry sets the
// flag, then the first occurrence of each is stripped before the name/type
// split.
func parseColumnEntry(rest string) (Column, error) {
	col := Column{}
	if strings.Contains(rest, " NOT NULL") {
		col.NotNull = true
		rest = strings.Replace(rest, " NOT NULL", "", 1)
	}
	if strings.Contains(rest, " PRIMARY KEY") {
		col.PrimaryKey = true
		rest = strings.Replace(rest, " PRIMARY KEY", "", 1)
	}
	name, typ, ok := strings.Cut(rest, " ")
	if !ok {
		return Column{}, parseErrorf("malformed column entry %q", rest)
	}
	col.Name = name
	col.Type = typ
	return col, nil
}

// parseIndexEntry parses "<name> (<col, ...>) [UNIQUE]". Malformed entries
// are skipped rather than failing the dump.
func parseIndexEntry(rest string) (Index, bool) {
	idx := Index{}
	if strings.HasSuffix(rest, " UNIQUE") {
		idx.Unique = true
		rest = strings.TrimSuffix(rest, " UNIQUE")
	}
	name, cols, ok := splitNameAndColumns(rest)
	if !ok {
		return Index{}, false
	}
	idx.Name = name
	idx.Columns = cols
	return idx, true
}

// parseForeignKeyEntry parses "<name> (<cols>) REFERENCES <table>(<cols>)".
func parseForeignKeyEntry(rest string) (ForeignKey, bool) {
	left, right, ok := strings.Cut(rest, " REFERENCES ")
	if !ok {
		return ForeignKey{}, false
	}
	name, cols, ok := splitNameAndColumns(left)
	if !ok {
		return ForeignKey{}, false
	}
	if !strings.HasSuffix(right, ")") {
		return ForeignKey{}, false
	}
	open := strings.Index(right, "(")
	if open <= 0 {
		return ForeignKey{}, false
	}
	toTable := strings.TrimSpace(right[:open])
	if toTable == "" {
		return ForeignKey{}, false
	}
	return ForeignKey{
		Name:      name,
		Columns:   cols,
		ToTable:   toTable,
		ToColumns: splitColumnList(right[open+1 : len(right)-1]),
	}, true
}

// splitNameAndColumns splits "<name> (<a, b>)" into name and column list.
func splitNameAndColumns(s string) (string, []string, bool) {
	if !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	open := strings.LastIndex(s, " (")
	if open < 0 {
		return "", nil, false
	}
	name := s[:open]
	if name == "" {
		return "", nil, false
	}
	return name, splitColumnList(s[open+2 : len(s)-1]), true
}

// splitColumnList splits a comma-separated column list, trimming entries and
// dropping empty ones.
func splitColumnList(s string) []string {
	var cols []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}
