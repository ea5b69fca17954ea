package granitectl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Client executes IDE requests against the engine. Each request is one
// synchronous invocation sequence — a single engine run, or two when format
// negotiation falls back — and requests share no state beyond the
// process-wide resolution log guard, so independent requests may run
// concurrently.
type Client struct {
	logger *slog.Logger
	runner runner
}

// New returns a Client that invokes the resolved engine binary.
func New(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		logger: logger,
		runner: &execRunner{logger: logger, timeout: invokeTimeout},
	}
}

// VerifyOpenable checks that path exists, is a regular file, and can be
// opened for reading. It does not invoke the engine.
func (c *Client) VerifyOpenable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Msg: fmt.Sprintf("database file not found: %s", path)}
	}
	if err != nil {
		return fmt.Errorf("unable to read database metadata: %w", err)
	}
	if !info.Mode().IsRegular() {
		return &ValidationError{Msg: fmt.Sprintf("path must point to a file: %s", path)}
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	return f.Close()
}

// CreateDatabase creates a new database at path by delegating to the
// engine's new subcommand. The destination must not exist yet; missing
// parent directories are created first.
func (c *Client) CreateDatabase(ctx context.Context, path string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return &ValidationError{Msg: fmt.Sprintf("file already exists: %s", path)}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to check destination: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create parent directory: %w", err)
		}
	}
	_, err := c.runner.run(ctx, "new", path)
	return err
}

// Execute runs sql against the database at dbPath. FormatJSONRows yields a
// structured result, negotiating down to the legacy table output when the
// engine predates the JSON format; FormatTable and FormatCSV return the
// engine's text verbatim.
func (c *Client) Execute(ctx context.Context, dbPath, sql, format string) (*ExecResponse, error) {
	if err := c.checkQueryInput(dbPath, sql); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSONRows:
		res, err := c.execStructured(ctx, dbPath, sql)
		if err != nil {
			return nil, err
		}
		return &ExecResponse{Format: format, Result: res}, nil
	case FormatTable, FormatCSV:
		inv, err := c.runner.run(ctx, "exec", "--format", format, "-q", sql, dbPath)
		if err != nil {
			return nil, err
		}
		return &ExecResponse{Format: format, Output: inv.stdout}, nil
	default:
		return nil, &ValidationError{Msg: fmt.Sprintf("unsupported format %s", format)}
	}
}

// Explain returns the engine's query plan JSON for sql verbatim.
func (c *Client) Explain(ctx context.Context, dbPath, sql string) (string, error) {
	if err := c.checkQueryInput(dbPath, sql); err != nil {
		return "", err
	}
	inv, err := c.runner.run(ctx, "explain", "--json", "-q", sql, dbPath)
	if err != nil {
		return "", err
	}
	return inv.stdout, nil
}

// Schema fetches schema metadata for the database at dbPath, negotiating
// down to the legacy dump format for engines that predate meta --json. The
// caller cannot tell which path produced the snapshot.
func (c *Client) Schema(ctx context.Context, dbPath string) (*Schema, error) {
	if err := c.checkDatabasePath(dbPath); err != nil {
		return nil, err
	}
	return c.fetchSchema(ctx, dbPath)
}

// ExportCSV runs sql and writes the engine's CSV output to destPath.
func (c *Client) ExportCSV(ctx context.Context, dbPath, sql, destPath string) error {
	if err := c.checkQueryInput(dbPath, sql); err != nil {
		return err
	}
	if strings.TrimSpace(destPath) == "" {
		return &ValidationError{Msg: "destination path must not be empty"}
	}
	inv, err := c.runner.run(ctx, "exec", "--format", "csv", "-q", sql, dbPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destPath, []byte(inv.stdout), 0o644); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func (c *Client) checkQueryInput(dbPath, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return &ValidationError{Msg: "SQL must not be empty"}
	}
	return c.checkDatabasePath(dbPath)
}

func (c *Client) checkDatabasePath(dbPath string) error {
	if err := checkPath(dbPath); err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Msg: fmt.Sprintf("database file not found: %s", dbPath)}
	}
	return nil
}

func checkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &ValidationError{Msg: "database path must not be empty"}
	}
	if !utf8.ValidString(path) {
		return &ValidationError{Msg: "database path contains unsupported characters"}
	}
	return nil
}
