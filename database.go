package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// initDB opens the SQLite database used as the OpenGraph metadata cache
// and creates its schema. Signals themselves are never persisted.
func initDB(path string) (*sql.DB, error) {
	slog.Debug("Initializing database", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createOGCacheTable := `
	CREATE TABLE IF NOT EXISTS opengraph_cache (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		title TEXT,
		description TEXT,
		image TEXT,
		site_name TEXT,
		fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP,
		fetch_success BOOLEAN DEFAULT TRUE
	)`
	if _, err = db.Exec(createOGCacheTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create opengraph_cache table: %w", err)
	}

	createOGIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_opengraph_url ON opengraph_cache(url)",
		"CREATE INDEX IF NOT EXISTS idx_opengraph_expires ON opengraph_cache(expires_at)",
	}
	for _, indexSQL := range createOGIndexes {
		if _, err = db.Exec(indexSQL); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create opengraph_cache index: %w", err)
		}
	}

	slog.Debug("Database initialized successfully")
	return db, nil
}

// getOpenGraphData retrieves unexpired cached OpenGraph data for a URL.
// A nil result with a nil error means no usable cache entry exists.
func getOpenGraphData(db *sql.DB, url string) (*OpenGraphCache, error) {
	query := `
		SELECT id, url, title, description, image, site_name, fetched_at, expires_at, fetch_success
		FROM opengraph_cache
		WHERE url = ? AND expires_at > ?`

	var cache OpenGraphCache
	err := db.QueryRow(query, url, time.Now()).Scan(
		&cache.ID,
		&cache.URL,
		&cache.Title,
		&cache.Description,
		&cache.Image,
		&cache.SiteName,
		&cache.FetchedAt,
		&cache.ExpiresAt,
		&cache.FetchSuccess,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query OpenGraph cache: %w", err)
	}

	slog.Debug("Found cached OpenGraph data", "url", url, "title", cache.Title)
	return &cache, nil
}

// cacheOpenGraphData stores OpenGraph data with an expiry: 7 days for
// successful fetches, 1 day for failures so broken hosts get retried.
func cacheOpenGraphData(db *sql.DB, ogData *OpenGraphData, fetchSuccess bool) error {
	var expiresAt time.Time
	if fetchSuccess {
		expiresAt = time.Now().Add(7 * 24 * time.Hour)
	} else {
		expiresAt = time.Now().Add(24 * time.Hour)
	}

	query := `
		INSERT INTO opengraph_cache (url, title, description, image, site_name, fetched_at, expires_at, fetch_success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			image = excluded.image,
			site_name = excluded.site_name,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at,
			fetch_success = excluded.fetch_success`

	_, err := db.Exec(query,
		ogData.URL,
		ogData.Title,
		ogData.Description,
		ogData.Image,
		ogData.SiteName,
		time.Now(),
		expiresAt,
		fetchSuccess,
	)
	if err != nil {
		return fmt.Errorf("failed to cache OpenGraph data: %w", err)
	}

	slog.Debug("Cached OpenGraph data", "url", ogData.URL, "success", fetchSuccess)
	return nil
}

// cleanupExpiredOpenGraphCache removes expired cache entries.
func cleanupExpiredOpenGraphCache(db *sql.DB) error {
	result, err := db.Exec("DELETE FROM opengraph_cache WHERE expires_at < ?", time.Now())
	if err != nil {
		return fmt.Errorf("failed to cleanup expired cache: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		slog.Debug("Cleaned up expired OpenGraph cache entries", "count", rowsAffected)
	}
	return nil
}
