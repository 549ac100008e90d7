package songs

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/jainilbavishi24/spotify-clone/internal/events"
)

type Server struct {
	db        DB
	events    *events.Publisher
	uploadDir string
}

func NewServer(db DB, pub *events.Publisher, uploadDir string) *Server {
	return &Server{
		db:        db,
		events:    pub,
		uploadDir: uploadDir,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.handleListSongs)
	r.Get("/search", s.handleSearchSongs)
	r.Post("/upload", s.handleUploadSong)
	r.Get("/{id}", s.handleGetSong)
	return r
}

// SongByID loads a single song's metadata. Other packages use it to
// resolve membership references.
func (s *Server) SongByID(ctx context.Context, id string) (Song, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, artist, album, duration, file_path, cover_art, created_at
		FROM songs
		WHERE id = $1
	`, id)
	return scanSong(row)
}
