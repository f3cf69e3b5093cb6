// Package store provides a SQLite-backed cache for parsed yearly tables.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/salarygap/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed table caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a table's source file.
type FileInfo struct {
	Table     string
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all cached tables.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT name, file_path, mtime_ns, size_bytes FROM tables")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&fi.Table, &path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveTable stores a parsed table and the tracking info of the file it came from.
// Any previous copy of the table is replaced.
func (c *Cache) SaveTable(t *model.YearlyTable, filePath string, mtimeNs, sizeBytes int64) error {
	cats, err := json.Marshal(t.Categories)
	if err != nil {
		return err
	}
	years, err := json.Marshal(t.YearDomain())
	if err != nil {
		return err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM cells WHERE table_name = ?", t.Name); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO tables
		(name, file_path, mtime_ns, size_bytes, categories_json, years_json, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Name, filePath, mtimeNs, sizeBytes, string(cats), string(years), now,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO cells (table_name, year, category, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range t.Rows {
		for _, cat := range t.Categories {
			if _, err := stmt.Exec(t.Name, row.Year, cat, row.Values[cat]); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadTable reads a cached table. It returns sql.ErrNoRows when the table
// has never been cached.
func (c *Cache) LoadTable(name string) (*model.YearlyTable, error) {
	var catsJSON, yearsJSON string
	err := c.db.QueryRow("SELECT categories_json, years_json FROM tables WHERE name = ?", name).
		Scan(&catsJSON, &yearsJSON)
	if err != nil {
		return nil, err
	}

	t := &model.YearlyTable{Name: name}
	if err := json.Unmarshal([]byte(catsJSON), &t.Categories); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}
	var years []int
	if err := json.Unmarshal([]byte(yearsJSON), &years); err != nil {
		return nil, fmt.Errorf("decoding years: %w", err)
	}

	rowIdx := make(map[int]int, len(years))
	t.Rows = make([]model.YearRow, len(years))
	for i, y := range years {
		t.Rows[i] = model.YearRow{Year: y, Values: make(map[string]float64, len(t.Categories))}
		rowIdx[y] = i
	}

	rows, err := c.db.Query("SELECT year, category, value FROM cells WHERE table_name = ?", name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			year  int
			cat   string
			value float64
		)
		if err := rows.Scan(&year, &cat, &value); err != nil {
			return nil, err
		}
		i, ok := rowIdx[year]
		if !ok {
			return nil, fmt.Errorf("cached cell for unknown year %d in %s", year, name)
		}
		t.Rows[i].Values[cat] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range t.Rows {
		if len(r.Values) != len(t.Categories) {
			return nil, fmt.Errorf("cached table %s is incomplete for year %d", name, r.Year)
		}
	}
	return t, nil
}

// DeleteTable removes a cached table and its cells.
func (c *Cache) DeleteTable(name string) error {
	_, err := c.db.Exec("DELETE FROM tables WHERE name = ?", name)
	return err
}

// TableCount returns the number of cached tables.
func (c *Cache) TableCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM tables").Scan(&count)
	return count, err
}
