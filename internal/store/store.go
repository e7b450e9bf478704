// Package store persists generated puzzles and implements the daily
// challenge catalog: archival, cross-run hash deduplication, and
// date assignment (spec.md §1's "challenge catalog management" and
// "daily puzzle date assignment" collaborators).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/crossplay/mcwgen/pkg/puzzle"
)

// Store wraps a Postgres archive and a Redis dedup cache, mirroring the
// teacher's dual-client Database struct.
type Store struct {
	DB    *sql.DB
	Redis *redis.Client
}

// New opens and pings both backing stores.
func New(postgresURL, redisURL string) (*Store, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("store: parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("store: ping redis: %w", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

func (s *Store) Close() error {
	if err := s.DB.Close(); err != nil {
		return err
	}
	return s.Redis.Close()
}

// InitSchema creates the puzzles archive table if it does not exist.
func (s *Store) InitSchema() error {
	_, err := s.DB.Exec(`
	CREATE TABLE IF NOT EXISTS puzzles (
		hash_hex      VARCHAR(64) PRIMARY KEY,
		id            VARCHAR(64) NOT NULL,
		date          DATE UNIQUE,
		width         INTEGER NOT NULL,
		height        INTEGER NOT NULL,
		black_cells   JSONB NOT NULL,
		grid_solution JSONB NOT NULL,
		entries       JSONB NOT NULL,
		created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_date ON puzzles(date);
	`)
	if err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}
	return nil
}

// dedupKey is the Redis key namespace for the hash pre-check.
func dedupKey(hashHex string) string {
	return "puzzle:hash:" + hashHex
}

// SeenHash reports whether hashHex has already been archived, checking
// the Redis cache before falling back to Postgres (§1 "deduplication by
// hash across previously generated puzzles").
func (s *Store) SeenHash(ctx context.Context, hashHex string) (bool, error) {
	n, err := s.Redis.Exists(ctx, dedupKey(hashHex)).Result()
	if err == nil && n > 0 {
		return true, nil
	}

	var exists bool
	err = s.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM puzzles WHERE hash_hex = $1)`, hashHex).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("store: check hash %s: %w", hashHex, err)
	}
	if exists {
		s.Redis.Set(ctx, dedupKey(hashHex), "1", 0)
	}
	return exists, nil
}

// Archive stores p under hashHex, the dedup key supplied by the caller.
// The Puzzle record carries no full digest, only p.ID ("mcw_v1_" +
// hash[:16]); internal/server passes those 16 hex chars as hashHex, so
// archive rows are keyed on the hash prefix, not the full SHA-256.
func (s *Store) Archive(ctx context.Context, hashHex string, p *puzzle.Puzzle) error {
	blackCellsJSON, err := json.Marshal(p.BlackCells)
	if err != nil {
		return fmt.Errorf("store: marshal black cells: %w", err)
	}
	gridSolutionJSON, err := json.Marshal(p.GridSolution)
	if err != nil {
		return fmt.Errorf("store: marshal grid solution: %w", err)
	}
	entriesJSON, err := json.Marshal(p.Entries)
	if err != nil {
		return fmt.Errorf("store: marshal entries: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO puzzles (hash_hex, id, width, height, black_cells, grid_solution, entries)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hash_hex) DO NOTHING
	`, hashHex, p.ID, p.Width, p.Height, blackCellsJSON, gridSolutionJSON, entriesJSON)
	if err != nil {
		return fmt.Errorf("store: archive %s: %w", p.ID, err)
	}

	if setErr := s.Redis.Set(ctx, dedupKey(hashHex), p.ID, 0).Err(); setErr != nil {
		return fmt.Errorf("store: cache hash %s: %w", hashHex, setErr)
	}
	return nil
}

// row mirrors one archived puzzles row.
type row struct {
	hashHex      string
	id           string
	date         sql.NullString
	width        int
	height       int
	blackCells   []byte
	gridSolution []byte
	entries      []byte
}

func scanPuzzle(r row) (*puzzle.Puzzle, error) {
	p := &puzzle.Puzzle{ID: r.id, Width: r.width, Height: r.height}
	if r.date.Valid {
		p.Date = r.date.String
	}
	if err := json.Unmarshal(r.blackCells, &p.BlackCells); err != nil {
		return nil, fmt.Errorf("store: unmarshal black cells: %w", err)
	}
	if err := json.Unmarshal(r.gridSolution, &p.GridSolution); err != nil {
		return nil, fmt.Errorf("store: unmarshal grid solution: %w", err)
	}
	if err := json.Unmarshal(r.entries, &p.Entries); err != nil {
		return nil, fmt.Errorf("store: unmarshal entries: %w", err)
	}
	p.GridPreview = gridPreview(p)
	return p, nil
}

// gridPreview rebuilds §6's row-major black/letter preview from the
// stored grid solution, since the preview itself is not persisted.
func gridPreview(p *puzzle.Puzzle) []string {
	preview := make([]string, len(p.GridSolution))
	for r, row := range p.GridSolution {
		buf := make([]byte, len(row))
		for c, letter := range row {
			if letter == nil {
				buf[c] = '-'
			} else {
				buf[c] = (*letter)[0]
			}
		}
		preview[r] = string(buf)
	}
	return preview
}

// GetByDate returns the puzzle archived under the given YYYY-MM-DD date,
// or nil if none is assigned.
func (s *Store) GetByDate(ctx context.Context, date string) (*puzzle.Puzzle, error) {
	var r row
	err := s.DB.QueryRowContext(ctx, `
		SELECT hash_hex, id, date, width, height, black_cells, grid_solution, entries
		FROM puzzles WHERE date = $1
	`, date).Scan(&r.hashHex, &r.id, &r.date, &r.width, &r.height, &r.blackCells, &r.gridSolution, &r.entries)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get by date %s: %w", date, err)
	}
	return scanPuzzle(r)
}

// AssignDaily walks archived, unassigned puzzles in hash order and stamps
// them with consecutive dates starting at startDate, never overwriting an
// already-assigned date — the Go translation of
// original_source/generate_daily_challenges.py's assignment loop.
func (s *Store) AssignDaily(ctx context.Context, startDate time.Time, count int) (int, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT hash_hex FROM puzzles WHERE date IS NULL ORDER BY hash_hex ASC LIMIT $1
	`, count)
	if err != nil {
		return 0, fmt.Errorf("store: select unassigned: %w", err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return 0, fmt.Errorf("store: scan unassigned: %w", err)
		}
		hashes = append(hashes, h)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	assigned := 0
	for i, hash := range hashes {
		date := startDate.AddDate(0, 0, i).Format("2006-01-02")
		res, err := s.DB.ExecContext(ctx, `
			UPDATE puzzles SET date = $1 WHERE hash_hex = $2 AND date IS NULL
		`, date, hash)
		if err != nil {
			return assigned, fmt.Errorf("store: assign %s to %s: %w", hash, date, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			assigned++
		}
	}
	return assigned, nil
}

// ResetUnpublished clears the date on every archived puzzle whose
// assigned date is later than asOf, mirroring
// original_source/reset_puzzles.py's provisional-assignment clear.
func (s *Store) ResetUnpublished(ctx context.Context, asOf time.Time) (int, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE puzzles SET date = NULL WHERE date > $1
	`, asOf.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("store: reset unpublished: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
