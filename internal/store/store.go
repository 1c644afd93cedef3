package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps curated items in a sqlite file so later runs can evaluate or
// train on them without re-curating.
type Store struct {
	DB     *sql.DB
	DBPath string
}

func GetDefaultDbPath(profile string) (string, error) {
	if path := os.Getenv("PRICER_DB_PATH"); path != "" {
		return path, nil
	}
	if profile == "" {
		profile = "pricer"
	}

	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheDir = filepath.Join(home, ".cache")
	}

	pricerCacheDir := filepath.Join(cacheDir, "pricer")
	if err := os.MkdirAll(pricerCacheDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(pricerCacheDir, fmt.Sprintf("%s.sqlite", profile)), nil
}

func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDbPath("")
		if err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{DB: db, DBPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Status holds store-wide and per-category counts for the status command.
type Status struct {
	DBPath     string
	ItemCount  int
	Categories []CategoryStatus
}

// CategoryStatus is per-category stats.
type CategoryStatus struct {
	Name          string
	ItemCount     int
	AveragePrice  float64
	AverageTokens float64
	CuratedAt     string
}

// GetStatus returns the store path, total item count and per-category stats.
func (s *Store) GetStatus() (*Status, error) {
	st := &Status{DBPath: s.DBPath}
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&st.ItemCount); err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`
		SELECT category, COUNT(*), AVG(price), AVG(token_count), MAX(curated_at)
		FROM items
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c CategoryStatus
		var curatedAt sql.NullString
		if err := rows.Scan(&c.Name, &c.ItemCount, &c.AveragePrice, &c.AverageTokens, &curatedAt); err != nil {
			return nil, err
		}
		if curatedAt.Valid {
			c.CuratedAt = curatedAt.String
		}
		st.Categories = append(st.Categories, c)
	}
	return st, rows.Err()
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			price REAL NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			token_count INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			curated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category)`,
		`CREATE INDEX IF NOT EXISTS idx_items_price ON items(price)`,
	}

	for _, query := range queries {
		if _, err := s.DB.Exec(query); err != nil {
			return fmt.Errorf("schema init failed: %w (query: %s)", err, query)
		}
	}

	return nil
}
