// Package storage provides SQLite-based persistence for runs and the
// player profile. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/fofr-runner/internal/games/runner"
)

// DefaultPlayer is the leaderboard name used until SetPlayer is called.
const DefaultPlayer = "Pedro"

// Store manages the SQLite database connection. It is safe for concurrent use.
type Store struct {
	db *sql.DB

	mu     sync.Mutex // serialises profile read-modify-write
	player string
}

// RunEntry represents one finished run.
type RunEntry struct {
	ID          int64
	Player      string
	Score       int
	Distance    float64
	TopSpeed    float64
	Cause       string
	Duration    float64
	Flips       int
	Powerups    int
	Hits        int
	ChallengeID string
	ChallengeOK bool
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, player: DefaultPlayer}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			distance REAL NOT NULL DEFAULT 0,
			top_speed REAL NOT NULL DEFAULT 0,
			cause TEXT NOT NULL DEFAULT '',
			duration_secs REAL NOT NULL DEFAULT 0,
			flips INTEGER NOT NULL DEFAULT 0,
			powerups INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			challenge_id TEXT NOT NULL DEFAULT '',
			challenge_ok INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetPlayer sets the name recorded with new runs and leaderboard entries.
func (s *Store) SetPlayer(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		name = DefaultPlayer
	}
	s.player = name
}

// Player returns the current player name.
func (s *Store) Player() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

// SaveRun records a finished run under the current player name.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(sum runner.Summary) (int64, error) {
	return s.saveRun(s.Player(), sum)
}

func (s *Store) saveRun(name string, sum runner.Summary) (int64, error) {
	var challengeID string
	var challengeOK bool
	if sum.Challenge != nil {
		challengeID = sum.Challenge.ID
		challengeOK = sum.Challenge.Completed
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (player, score, distance, top_speed, cause, duration_secs, flips, powerups, hits, challenge_id, challenge_ok)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, sum.Score, sum.Distance, sum.TopSpeed, sum.Cause, sum.Duration,
		sum.Flips, sum.Powerups, sum.Hits, challengeID, challengeOK,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, player, score, distance, top_speed, cause, duration_secs,
		        flips, powerups, hits, challenge_id, challenge_ok, created_at`

// TopRuns retrieves the top N runs ordered by score descending.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`, limit)
}

// RecentRuns retrieves the most recent runs.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.Player, &e.Score, &e.Distance, &e.TopSpeed, &e.Cause, &e.Duration,
			&e.Flips, &e.Powerups, &e.Hits, &e.ChallengeID, &e.ChallengeOK, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded run score, 0 if there are none.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes the run history. The profile is kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics over all runs.
type RunStats struct {
	Runs         int
	HighScore    int
	AvgScore     float64
	BestDistance float64
	TotalFlips   int64
	LastPlayed   time.Time
}

// Stats retrieves aggregated run statistics.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(distance), 0), COALESCE(SUM(flips), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.BestDistance, &stats.TotalFlips, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// LoadBestScore implements runner.Persistence. It returns the larger of
// the profile record and the run history. A malformed profile still
// yields the run history value together with the error.
func (s *Store) LoadBestScore() (int, error) {
	high, err := s.HighScore()
	if err != nil {
		return 0, err
	}
	p, err := s.LoadProfile()
	if p.Game.HighScore > high {
		high = p.Game.HighScore
	}
	return high, err
}

// SaveSummary implements runner.Persistence: the run lands in the history
// and the profile records, leaderboard and achievements are merged.
func (s *Store) SaveSummary(sum runner.Summary) error {
	return s.saveSummary(s.Player(), sum)
}

func (s *Store) saveSummary(name string, sum runner.Summary) error {
	if _, err := s.saveRun(name, sum); err != nil {
		return err
	}
	return s.UpdateProfile(func(p *Profile) {
		p.Record(name, sum)
	})
}

// PlayerStore records runs under a fixed name. The SSH server hands one
// to each session so concurrent players do not share SetPlayer.
type PlayerStore struct {
	store *Store
	name  string
}

// For returns a persistence collaborator bound to name.
func (s *Store) For(name string) *PlayerStore {
	if name == "" {
		name = DefaultPlayer
	}
	return &PlayerStore{store: s, name: name}
}

// Name returns the bound player name.
func (p *PlayerStore) Name() string { return p.name }

// LoadBestScore implements runner.Persistence.
func (p *PlayerStore) LoadBestScore() (int, error) { return p.store.LoadBestScore() }

// SaveSummary implements runner.Persistence.
func (p *PlayerStore) SaveSummary(sum runner.Summary) error { return p.store.saveSummary(p.name, sum) }

// Ensure both stores implement runner.Persistence
var (
	_ runner.Persistence = (*Store)(nil)
	_ runner.Persistence = (*PlayerStore)(nil)
)

func (s *Store) getKV(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) putKV(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

func (s *Store) deleteKV(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// parseTime handles both time.Time and SQLite text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
