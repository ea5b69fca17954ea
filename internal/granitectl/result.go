package granitectl

// Output format tokens accepted by Execute. These are the tokens the IDE
// frontend sends; FormatTable and FormatCSV double as the engine's own
// --format values.
const (
	FormatJSONRows = "jsonRows"
	FormatTable    = "table"
	FormatCSV      = "csv"
)

// QueryResult is the canonical query result shape both engine generations
// converge on: the modern JSON mode emits it directly, the legacy exec parser
// synthesizes it from the plain-text table output.
type QueryResult struct {
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
	DurationMS   uint64     `json:"durationMs"`
	RowsAffected *uint64    `json:"rowsAffected,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// ExecResponse is what Execute returns to the frontend: the format that was
// requested plus either the raw engine text or a structured result.
type ExecResponse struct {
	Format string       `json:"format"`
	Output string       `json:"output,omitempty"`
	Result *QueryResult `json:"result,omitempty"`
}

// Schema mirrors the engine's meta JSON; the legacy dump parser produces the
// same shape. Indexes and foreign keys are omitted entirely rather than
// serialized empty: the legacy dump format cannot distinguish "none declared"
// from "not inspected", so absence is the only representable state.
type Schema struct {
	Database string  `json:"database,omitempty"`
	Tables   []Table `json:"tables"`
}

// Table describes one table in a schema snapshot.
type Table struct {
	Name        string       `json:"name"`
	RowCount    uint64       `json:"rowCount"`
	Columns     []Column     `json:"columns"`
	Indexes     []Index      `json:"indexes,omitempty"`
	ForeignKeys []ForeignKey `json:"foreignKeys,omitempty"`
}

// Column describes one column definition.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"notNull"`
	PrimaryKey bool   `json:"isPrimaryKey"`
}

// Index describes one index entry.
type Index struct {
	Name    string   `json:"name"`
	Unique  bool     `json:"unique"`
	Columns []string `json:"columns"`
}

// ForeignKey describes one referential constraint.
type ForeignKey struct {
	Name      string   `json:"name"`
	Columns   []string `json:"fromColumns"`
	ToTable   string   `json:"toTable"`
	ToColumns []string `json:"toColumns"`
}

// normalizeQueryResult enforces the canonical invariants on a result
// deserialized from the modern JSON mode: columns and rows are arrays, never
// null, and rowsAffected is present only when greater than zero.
func normalizeQueryResult(res *QueryResult) {
	if res.Columns == nil {
		res.Columns = []string{}
	}
	if res.Rows == nil {
		res.Rows = [][]string{}
	}
	if res.RowsAffected != nil && *res.RowsAffected == 0 {
		res.RowsAffected = nil
	}
}

// normalizeSchema enforces the omission rule on a schema deserialized from
// the modern JSON mode, which serializes empty index and foreign-key lists.
func normalizeSchema(schema *Schema) {
	if schema.Tables == nil {
		schema.Tables = []Table{}
	}
	for i := range schema.Tables {
		t := &schema.Tables[i]
		if t.Columns == nil {
			t.Columns = []Column{}
		}
		if len(t.Indexes) == 0 {
			t.Indexes = nil
		}
		if len(t.ForeignKeys) == 0 {
			t.ForeignKeys = nil
		}
	}
}
