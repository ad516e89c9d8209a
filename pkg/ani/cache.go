package ani

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed store of directional ANI/AF measurements.
// Pairwise genome comparisons are expensive, so measurements computed in
// one curation run are cached for the next. The cache is a memoization
// side-store, never the system of record.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS ani_cache (
	query_gid TEXT NOT NULL,
	ref_gid   TEXT NOT NULL,
	ani       REAL NOT NULL,
	af        REAL NOT NULL,
	PRIMARY KEY (query_gid, ref_gid)
);`

// OpenCache opens (creating if needed) an ANI cache database.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ANI cache: %w", err)
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ANI cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Load materializes the whole cache as a Matrix.
func (c *Cache) Load() (Matrix, error) {
	rows, err := c.db.Query(`SELECT query_gid, ref_gid, ani, af FROM ani_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to read ANI cache: %w", err)
	}
	defer rows.Close()

	m := make(Matrix)
	for rows.Next() {
		var qid, rid string
		var p Pair
		if err := rows.Scan(&qid, &rid, &p.ANI, &p.AF); err != nil {
			return nil, fmt.Errorf("failed to scan ANI cache row: %w", err)
		}
		m.Set(qid, rid, p)
	}

	return m, rows.Err()
}

// Store upserts one directional measurement.
func (c *Cache) Store(qid, rid string, p Pair) error {
	_, err := c.db.Exec(
		`INSERT INTO ani_cache (query_gid, ref_gid, ani, af) VALUES (?, ?, ?, ?)
		 ON CONFLICT (query_gid, ref_gid) DO UPDATE SET ani = excluded.ani, af = excluded.af`,
		qid, rid, p.ANI, p.AF)
	if err != nil {
		return fmt.Errorf("failed to store ANI for %s vs %s: %w", qid, rid, err)
	}
	return nil
}

// StoreMatrix upserts every measurement of a matrix in one transaction.
func (c *Cache) StoreMatrix(m Matrix) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin ANI cache transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO ani_cache (query_gid, ref_gid, ani, af) VALUES (?, ?, ?, ?)
		 ON CONFLICT (query_gid, ref_gid) DO UPDATE SET ani = excluded.ani, af = excluded.af`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare ANI cache statement: %w", err)
	}
	defer stmt.Close()

	for qid, row := range m {
		for rid, p := range row {
			if _, err := stmt.Exec(qid, rid, p.ANI, p.AF); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to store ANI for %s vs %s: %w", qid, rid, err)
			}
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
