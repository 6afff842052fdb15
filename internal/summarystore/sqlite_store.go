package summarystore

import (
	"fmt"
	"sort"
	"time"

	"crawshaw.io/sqlite"
	"github.com/localrivet/docsum/internal/vector"
)

// SQLiteSummaryStore is an implementation of SummaryStore that uses
// SQLite.
type SQLiteSummaryStore struct {
	conn   *sqlite.Conn
	dbPath string
}

// NewSQLiteSummaryStore creates a new SQLiteSummaryStore instance.
func NewSQLiteSummaryStore() *SQLiteSummaryStore {
	return &SQLiteSummaryStore{}
}

// Initialize initializes the store with the given database path.
func (s *SQLiteSummaryStore) Initialize(dbPath string) error {
	s.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s.conn = conn

	if err := s.createTable(); err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// createTable creates the summaries table if it doesn't exist.
func (s *SQLiteSummaryStore) createTable() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS summaries (
			id TEXT PRIMARY KEY,
			source_hash TEXT NOT NULL,
			summary_text TEXT NOT NULL,
			info TEXT NOT NULL,
			embedding BLOB NOT NULL,
			timestamp INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_source_hash ON summaries (source_hash);`,
	}

	for _, stmtSQL := range statements {
		stmt, err := s.conn.Prepare(stmtSQL)
		if err != nil {
			return fmt.Errorf("failed to prepare create statement: %w", err)
		}
		if _, err := stmt.Step(); err != nil {
			stmt.Reset()
			return fmt.Errorf("failed to execute create statement: %w", err)
		}
		stmt.Reset()
	}

	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteSummaryStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Store persists a summary in the database.
func (s *SQLiteSummaryStore) Store(id string, sourceHash string, summaryText string, info string, embedding []byte, timestamp time.Time) error {
	insertSQL := `
	INSERT OR REPLACE INTO summaries (id, source_hash, summary_text, info, embedding, timestamp)
	VALUES (?, ?, ?, ?, ?, ?);`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	// Bind parameters - indices in sqlite are 1-based
	stmt.BindText(1, id)
	stmt.BindText(2, sourceHash)
	stmt.BindText(3, summaryText)
	stmt.BindText(4, info)
	stmt.BindBytes(5, embedding)
	stmt.BindInt64(6, timestamp.Unix())

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}

	return nil
}

// Lookup returns the most recent summary derived from the source text
// with the given hash, or nil if none exists.
func (s *SQLiteSummaryStore) Lookup(sourceHash string) (*Entry, error) {
	selectSQL := `
	SELECT id, summary_text, info FROM summaries
	WHERE source_hash = ?
	ORDER BY timestamp DESC LIMIT 1;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare lookup statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, sourceHash)

	hasRow, err := stmt.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to execute lookup statement: %w", err)
	}
	if !hasRow {
		return nil, nil
	}

	return &Entry{
		ID:         stmt.ColumnText(0),
		SourceHash: sourceHash,
		Summary:    stmt.ColumnText(1),
		Info:       stmt.ColumnText(2),
	}, nil
}

// Search returns the stored summaries most similar to the given
// embedding. Similarity is computed in Go over all rows; the store is
// sized for one user's documents, not a corpus.
func (s *SQLiteSummaryStore) Search(queryEmbedding []float32, limit int) ([]string, error) {
	selectSQL := `
	SELECT id, summary_text, embedding FROM summaries
	ORDER BY timestamp DESC;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	type result struct {
		summaryText string
		similarity  float64
	}
	var results []result

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute select statement: %w", err)
		}
		if !hasRow {
			break
		}

		id := stmt.ColumnText(0)
		summaryText := stmt.ColumnText(1)

		embeddingBytes := make([]byte, stmt.ColumnLen(2))
		stmt.ColumnBytes(2, embeddingBytes)

		storedEmbedding, err := vector.BytesToFloat32Slice(embeddingBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to convert embedding bytes for entry %s: %w", id, err)
		}

		similarity, err := vector.CosineSimilarity(queryEmbedding, storedEmbedding)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate similarity for entry %s: %w", id, err)
		}

		results = append(results, result{summaryText: summaryText, similarity: similarity})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].similarity > results[j].similarity
	})

	if limit > len(results) {
		limit = len(results)
	}

	topSummaries := make([]string, limit)
	for i := 0; i < limit; i++ {
		topSummaries[i] = results[i].summaryText
	}

	return topSummaries, nil
}

// Delete removes the summary with the given id.
func (s *SQLiteSummaryStore) Delete(id string) error {
	deleteSQL := `DELETE FROM summaries WHERE id = ?;`

	stmt, err := s.conn.Prepare(deleteSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, id)

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}

	return nil
}

// Clear removes all summaries and reports how many were deleted.
func (s *SQLiteSummaryStore) Clear() (int, error) {
	countSQL := `SELECT COUNT(*) FROM summaries;`
	stmt, err := s.conn.Prepare(countSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare count statement: %w", err)
	}
	hasRow, err := stmt.Step()
	if err != nil {
		stmt.Reset()
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	count := 0
	if hasRow {
		count = int(stmt.ColumnInt64(0))
	}
	stmt.Reset()

	deleteSQL := `DELETE FROM summaries;`
	stmt, err = s.conn.Prepare(deleteSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare clear statement: %w", err)
	}
	defer stmt.Reset()

	if _, err := stmt.Step(); err != nil {
		return 0, fmt.Errorf("failed to clear summaries: %w", err)
	}

	return count, nil
}
