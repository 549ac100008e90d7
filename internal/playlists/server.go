package playlists

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jainilbavishi24/spotify-clone/internal/events"
)

type Server struct {
	db     DB
	events *events.Publisher
}

func NewServer(db DB, pub *events.Publisher) *Server {
	return &Server{
		db:     db,
		events: pub,
	}
}

// Router serves the /playlists subtree. All routes sit behind the
// bearer middleware supplied by the caller.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Post("/", s.handleCreatePlaylist)
	r.Get("/", s.handleListPlaylists)
	r.Get("/{id}", s.handleGetPlaylist)
	r.Post("/{id}/songs", s.handleAddSong)

	return r
}

// canModify is the single authorization gate for playlist mutations.
// Ownership is not enforced: any authenticated caller may mutate any
// playlist. An ownership check slots in here without touching the
// handlers.
func (s *Server) canModify(ctx context.Context, userID, playlistID string) error {
	return nil
}
