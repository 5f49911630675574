package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics SQLite database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create analytics dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_visitor_id ON visits(visitor_id);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting returns the value for key, or "" if the key does not exist.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting upserts a settings key.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// SaveVisit records a single page view.
func (s *Store) SaveVisit(v *Visit) error {
	_, err := s.db.Exec(
		`INSERT INTO visits (visitor_id, path, referrer, timestamp) VALUES (?, ?, ?, ?)`,
		v.VisitorID, v.Path, v.Referrer, v.Timestamp.UTC(),
	)
	return err
}

// GetStats aggregates visits between from and to (inclusive).
func (s *Store) GetStats(from, to time.Time) (*Stats, error) {
	stats := &Stats{
		Period: from.Format("2006-01-02") + ".." + to.Format("2006-01-02"),
	}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp BETWEEN ? AND ?`,
		from.UTC(), to.UTC(),
	).Scan(&stats.TotalViews, &stats.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}

	stats.TopPages, err = s.topDimension("path", from, to)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	stats.TopReferrers, err = s.topDimension("referrer", from, to)
	if err != nil {
		return nil, fmt.Errorf("top referrers: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT date(timestamp) AS day, COUNT(*) FROM visits
		 WHERE timestamp BETWEEN ? AND ?
		 GROUP BY day ORDER BY day`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dv DailyView
		if err := rows.Scan(&dv.Day, &dv.Views); err != nil {
			return nil, err
		}
		stats.DailyViews = append(stats.DailyViews, dv)
	}
	return stats, rows.Err()
}

func (s *Store) topDimension(column string, from, to time.Time) ([]PageStat, error) {
	// column is one of the fixed names above, never user input.
	rows, err := s.db.Query(
		`SELECT `+column+`, COUNT(*) AS views FROM visits
		 WHERE timestamp BETWEEN ? AND ? AND `+column+` != ''
		 GROUP BY `+column+` ORDER BY views DESC LIMIT 10`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PageStat
	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// CleanupOldVisits deletes visits older than retentionDays.
func (s *Store) CleanupOldVisits(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	_, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	return err
}

// StartCleanupScheduler runs CleanupOldVisits every interval until the
// returned stop function is called.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				_ = s.CleanupOldVisits(retentionDays)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
