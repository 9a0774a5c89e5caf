// Package storage persists per-file analysis results in a SQLite database
// so repeated runs over an unchanged tree skip parsing entirely.
package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/akrisanov/docstring-verifier/internal/rules"
)

const schemaVersion = 1

// Cache stores diagnostics keyed by (file path, content hash). Payloads are
// JSON encoded and zstd compressed before hitting the database.
type Cache struct {
	conn    *sql.DB
	logger  *slog.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// OpenCache opens or creates the cache database at <dir>/cache.db.
func OpenCache(dir string, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "cache.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA cache_size=-16000", // 16MB cache
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	cache := &Cache{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
	}

	if !dbExists {
		logger.Info("Creating cache database", "path", dbPath)
	}
	if err := cache.initializeSchema(); err != nil {
		cache.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return cache, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (c *Cache) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS file_diagnostics (
			path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			function_count INTEGER NOT NULL DEFAULT 0,
			payload BLOB NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (path, content_hash)
		);
		CREATE INDEX IF NOT EXISTS idx_diagnostics_created ON file_diagnostics(created_at);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
	`
	if _, err := c.conn.Exec(schema); err != nil {
		return err
	}
	_, err := c.conn.Exec(`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, schemaVersion)
	return err
}

// Close closes the database connection and compression codecs.
func (c *Cache) Close() error {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// HashContent returns the cache key for a file's content. Callers may prefix
// the content with salt parts, such as the analysis configuration, so entries
// written under one configuration never answer for another.
func HashContent(parts ...[]byte) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

type cachedEntry struct {
	Functions   int                `json:"functions"`
	Diagnostics []rules.Diagnostic `json:"diagnostics"`
}

// Get looks up diagnostics for a file revision. The second return value is
// false on a cache miss.
func (c *Cache) Get(path, contentHash string) ([]rules.Diagnostic, int, bool, error) {
	query := `SELECT payload FROM file_diagnostics WHERE path = ? AND content_hash = ?`

	var payload []byte
	err := c.conn.QueryRow(query, path, contentHash).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to query cache: %w", err)
	}

	raw, err := c.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to decompress cache entry: %w", err)
	}

	var entry cachedEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, 0, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	c.logger.Debug("Cache hit", "path", path)
	return entry.Diagnostics, entry.Functions, true, nil
}

// Put stores diagnostics for a file revision, replacing any previous entry
// for the same path so stale revisions do not accumulate.
func (c *Cache) Put(path, contentHash string, functions int, diags []rules.Diagnostic) error {
	raw, err := json.Marshal(cachedEntry{Functions: functions, Diagnostics: diags})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	payload := c.encoder.EncodeAll(raw, nil)

	tx, err := c.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM file_diagnostics WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to evict stale cache entries: %w", err)
	}

	query := `
		INSERT INTO file_diagnostics (path, content_hash, function_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, path, contentHash, functions, payload, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return tx.Commit()
}

// Prune removes entries older than the given age. Returns the number of
// rows deleted.
func (c *Cache) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339)
	result, err := c.conn.Exec(`DELETE FROM file_diagnostics WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		c.logger.Debug("Pruned cache entries", "removed", rows)
	}
	return rows, nil
}
