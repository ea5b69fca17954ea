package granitectl

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Fallback triggers. Older engine builds reject the modern invocations with
// these phrasings; matching is a case-insensitive substring check kept as
// pure predicates so the negotiation control flow can be tested separately.
var (
	formatRejectedPhrases  = []string{"unknown format", "unsupported format", "invalid format"}
	commandRejectedPhrases = []string{"unknown command", "unrecognized command", "unknown subcommand"}
)

// isFormatRejected reports whether an error message is the engine refusing
// the JSON output format, as opposed to any other failure.
func isFormatRejected(msg string) bool {
	return containsAny(msg, formatRejectedPhrases)
}

// isCommandRejected reports whether an error message is the engine refusing
// a subcommand it predates.
func isCommandRejected(msg string) bool {
	return containsAny(msg, commandRejectedPhrases)
}

func containsAny(msg string, phrases []string) bool {
	msg = strings.ToLower(msg)
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// execStructured asks for JSON rows and falls back to parsing the legacy
// table output when the engine predates the JSON format. Only a recognized
// rejection triggers the fallback: JSON garbage from an engine that accepted
// the format is a hard parse error, never a silent downgrade, so genuine
// corruption cannot masquerade as a compatibility signal.
func (c *Client) execStructured(ctx context.Context, dbPath, sql string) (*QueryResult, error) {
	inv, err := c.runner.run(ctx, "exec", "--format", "json", "-q", sql, dbPath)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && isFormatRejected(err.Error()) {
			return c.execLegacy(ctx, dbPath, sql)
		}
		return nil, err
	}

	var res QueryResult
	if jsonErr := json.Unmarshal([]byte(inv.stdout), &res); jsonErr != nil {
		return nil, parseErrorf("failed to parse JSON query result: %v", jsonErr)
	}
	normalizeQueryResult(&res)
	return &res, nil
}

// execLegacy runs the query in the legacy table format and parses the text.
func (c *Client) execLegacy(ctx context.Context, dbPath, sql string) (*QueryResult, error) {
	inv, err := c.runner.run(ctx, "exec", "--format", "table", "-q", sql, dbPath)
	if err != nil {
		return nil, err
	}
	return parseLegacyExecOutput(inv.stdout, inv.elapsed)
}

// fetchSchema asks for the structured metadata mode and falls back to the
// legacy dump when the engine predates the meta subcommand. Engines from that
// era differ in how they refuse: some exit non-zero, some print the refusal
// on stdout with a zero status, so both shapes are checked for the
// recognized rejection phrase before anything is treated as an error.
func (c *Client) fetchSchema(ctx context.Context, dbPath string) (*Schema, error) {
	inv, err := c.runner.run(ctx, "meta", "--json", dbPath)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && isCommandRejected(err.Error()) {
			return c.legacySchema(ctx, dbPath)
		}
		return nil, err
	}

	body := strings.TrimSpace(inv.stdout)
	if body == "" {
		return nil, parseErrorf("no metadata returned")
	}
	if body[0] != '{' && body[0] != '[' {
		if isCommandRejected(body) {
			return c.legacySchema(ctx, dbPath)
		}
		return nil, parseErrorf("unexpected metadata output: %s", snippet(body))
	}

	var schema Schema
	if jsonErr := json.Unmarshal([]byte(body), &schema); jsonErr != nil {
		return nil, parseErrorf("failed to parse JSON metadata: %v", jsonErr)
	}
	normalizeSchema(&schema)
	return &schema, nil
}

// legacySchema fetches the legacy dump and parses it.
func (c *Client) legacySchema(ctx context.Context, dbPath string) (*Schema, error) {
	inv, err := c.runner.run(ctx, "dump", dbPath)
	if err != nil {
		return nil, err
	}
	return parseLegacyDump(inv.stdout)
}

// snippet truncates text for inclusion in an error message.
func snippet(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
