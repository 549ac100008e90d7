package playlists

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jainilbavishi24/spotify-clone/internal/songs"
)

// Playlist is metadata only; membership is modelled separately in
// playlist_songs.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	UserID      string    `json:"userId"`
	Description *string   `json:"description"`
	CoverImage  *string   `json:"coverImage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistWithSongs is the playlist header plus its songs ordered by
// membership position ascending. That ordering is what "playlist
// order" means to every consumer.
type PlaylistWithSongs struct {
	Playlist
	Songs []songs.Song `json:"songs"`
}

// PlaylistSong is one membership row: a song's 1-based position within
// a playlist. The same song may appear at several positions.
type PlaylistSong struct {
	PlaylistID string    `json:"playlistId"`
	SongID     string    `json:"songId"`
	Position   int       `json:"position"`
	AddedAt    time.Time `json:"addedAt"`
}

var ErrPlaylistNotFound = errors.New("playlist not found")

// DB defines the interface for database operations.
// It is implemented by *pgxpool.Pool and can be mocked for testing.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AutoMigrate creates the playlist tables. playlist_songs deliberately
// carries no uniqueness constraint on (playlist_id, song_id): duplicate
// membership is representable and permitted.
func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlists (
          id          uuid PRIMARY KEY,
          name        TEXT NOT NULL,
          user_id     uuid NOT NULL REFERENCES users(id),
          description TEXT,
          cover_image TEXT,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		log.Printf("playlists: migrate playlists: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist_songs (
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          song_id     uuid NOT NULL REFERENCES songs(id),
          position    INT NOT NULL,
          added_at    TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("playlists: migrate playlist_songs: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_playlist_songs_playlist
      ON playlist_songs(playlist_id, position)
    `); err != nil {
		return err
	}

	return nil
}

func scanPlaylist(row pgx.Row) (Playlist, error) {
	var pl Playlist
	err := row.Scan(
		&pl.ID,
		&pl.Name,
		&pl.UserID,
		&pl.Description,
		&pl.CoverImage,
		&pl.CreatedAt,
		&pl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Playlist{}, ErrPlaylistNotFound
		}
		return Playlist{}, err
	}
	return pl, nil
}
