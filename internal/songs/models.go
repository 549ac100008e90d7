package songs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Song is stored metadata only. FilePath points under the upload root;
// this package never reads or writes the audio bytes after upload.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album"`
	Duration  int       `json:"duration"` // seconds
	FilePath  string    `json:"filePath"`
	CoverArt  *string   `json:"coverArt"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrSongNotFound = errors.New("song not found")

	// ErrEmptyQuery rejects a blank search term so a match-all scan
	// never reaches the store.
	ErrEmptyQuery = errors.New("search query is required")
)

// DB defines the interface for database operations.
// It is implemented by *pgxpool.Pool and can be mocked for testing.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS songs (
          id         uuid PRIMARY KEY,
          title      TEXT NOT NULL,
          artist     TEXT NOT NULL,
          album      TEXT NOT NULL DEFAULT '',
          duration   INT NOT NULL DEFAULT 0,
          file_path  TEXT NOT NULL,
          cover_art  TEXT,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		log.Printf("songs: migrate: %v", err)
		return err
	}
	return nil
}

func scanSong(row pgx.Row) (Song, error) {
	var sg Song
	err := row.Scan(
		&sg.ID,
		&sg.Title,
		&sg.Artist,
		&sg.Album,
		&sg.Duration,
		&sg.FilePath,
		&sg.CoverArt,
		&sg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, err
	}
	return sg, nil
}

func collectSongs(rows pgx.Rows) ([]Song, error) {
	defer rows.Close()

	list := []Song{}
	for rows.Next() {
		var sg Song
		if err := rows.Scan(
			&sg.ID,
			&sg.Title,
			&sg.Artist,
			&sg.Album,
			&sg.Duration,
			&sg.FilePath,
			&sg.CoverArt,
			&sg.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, sg)
	}
	return list, rows.Err()
}
