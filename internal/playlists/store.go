package playlists

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jainilbavishi24/spotify-clone/internal/songs"
)

func (s *Server) createPlaylist(ctx context.Context, ownerID, name string, description *string) (Playlist, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	row := s.db.QueryRow(ctx, `
		INSERT INTO playlists (id, name, user_id, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, name, user_id, description, cover_image, created_at, updated_at
	`, id, name, ownerID, description, now)
	return scanPlaylist(row)
}

func (s *Server) playlistsForOwner(ctx context.Context, ownerID string) ([]Playlist, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, user_id, description, cover_image, created_at, updated_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Playlist{}
	for rows.Next() {
		var pl Playlist
		if err := rows.Scan(
			&pl.ID,
			&pl.Name,
			&pl.UserID,
			&pl.Description,
			&pl.CoverImage,
			&pl.CreatedAt,
			&pl.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, pl)
	}
	return list, rows.Err()
}

// playlistWithSongs loads the header, then the membership rows joined
// to song metadata ordered by position ascending.
func (s *Server) playlistWithSongs(ctx context.Context, playlistID string) (PlaylistWithSongs, error) {
	pl, err := scanPlaylist(s.db.QueryRow(ctx, `
		SELECT id, name, user_id, description, cover_image, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`, playlistID))
	if err != nil {
		return PlaylistWithSongs{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.title, s.artist, s.album, s.duration, s.file_path, s.cover_art, s.created_at
		FROM songs s
		JOIN playlist_songs ps ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC
	`, playlistID)
	if err != nil {
		return PlaylistWithSongs{}, err
	}
	defer rows.Close()

	tracks := []songs.Song{}
	for rows.Next() {
		var sg songs.Song
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
			return PlaylistWithSongs{}, err
		}
		tracks = append(tracks, sg)
	}
	if err := rows.Err(); err != nil {
		return PlaylistWithSongs{}, err
	}

	return PlaylistWithSongs{Playlist: pl, Songs: tracks}, nil
}

// addSong appends a membership row. Position assignment lives here and
// nowhere else: next = max(position)+1 within the playlist, 1 when the
// playlist is empty. Nothing verifies that the playlist or song exists
// or that the song is not already a member; two concurrent appends can
// also compute the same position. Renumbering for a future remove or
// reorder operation belongs in this method.
func (s *Server) addSong(ctx context.Context, playlistID, songID string) (PlaylistSong, error) {
	var next int
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(position), 0) + 1
		FROM playlist_songs
		WHERE playlist_id = $1
	`, playlistID).Scan(&next)
	if err != nil && err != pgx.ErrNoRows {
		return PlaylistSong{}, fmt.Errorf("next position: %w", err)
	}
	if next < 1 {
		next = 1
	}

	ps := PlaylistSong{
		PlaylistID: playlistID,
		SongID:     songID,
		Position:   next,
		AddedAt:    time.Now().UTC(),
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position, added_at)
		VALUES ($1, $2, $3, $4)
	`, ps.PlaylistID, ps.SongID, ps.Position, ps.AddedAt)
	if err != nil {
		return PlaylistSong{}, fmt.Errorf("insert membership: %w", err)
	}
	return ps, nil
}
