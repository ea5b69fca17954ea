package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

func TestRenderResultTable(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, &granitectl.QueryResult{
		Columns:    []string{"id", "name"},
		Rows:       [][]string{{"1", "alice"}, {"2", "bob"}},
		DurationMS: 3,
	})

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "(2 row(s))")
}

func TestRenderResultStatusMessage(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, &granitectl.QueryResult{
		Message: "3 row(s) inserted",
	})

	assert.Equal(t, "3 row(s) inserted\n", buf.String())
}

func TestRenderResultEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, &granitectl.QueryResult{})

	assert.Equal(t, "(0 row(s))\n", buf.String())
}

func TestRenderResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResultJSON(&buf, &granitectl.QueryResult{
		Columns:    []string{"n"},
		Rows:       [][]string{{"1"}},
		DurationMS: 2,
	}))

	var decoded granitectl.QueryResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"n"}, decoded.Columns)
}

func TestRenderSchema(t *testing.T) {
	var buf bytes.Buffer
	renderSchema(&buf, &granitectl.Schema{
		Tables: []granitectl.Table{{
			Name:     "users",
			RowCount: 2,
			Columns: []granitectl.Column{
				{Name: "id", Type: "INT", NotNull: true, PrimaryKey: true},
				{Name: "name", Type: "TEXT"},
			},
			Indexes: []granitectl.Index{
				{Name: "idx_users_name", Unique: true, Columns: []string{"name"}},
			},
			ForeignKeys: []granitectl.ForeignKey{
				{Name: "fk_users_team", Columns: []string{"team_id"}, ToTable: "teams", ToColumns: []string{"id"}},
			},
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "Table: users (2 row(s))")
	assert.Contains(t, out, "Indexes:")
	assert.Contains(t, out, "idx_users_name (name) UNIQUE")
	assert.Contains(t, out, "Foreign Keys:")
	assert.Contains(t, out, "fk_users_team (team_id) -> teams (id)")
}

func TestRenderSchemaEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderSchema(&buf, &granitectl.Schema{})

	assert.Equal(t, "No tables defined\n", buf.String())
}
