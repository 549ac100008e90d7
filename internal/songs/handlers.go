package songs

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jainilbavishi24/spotify-clone/internal/httputil"
)

// handleListSongs returns the whole catalog, newest first.
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(r.Context(), `
		SELECT id, title, artist, album, duration, file_path, cover_art, created_at
		FROM songs
		ORDER BY created_at DESC
	`)
	if err != nil {
		log.Printf("songs: list: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	list, err := collectSongs(rows)
	if err != nil {
		log.Printf("songs: list scan: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	song, err := s.SongByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSongNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "song not found")
			return
		}
		log.Printf("songs: get %s: %v", id, err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, song)
}

// handleSearchSongs does a case-insensitive substring match over
// title, artist and album. Results come back in storage order; there
// is no ranking.
func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteError(w, http.StatusBadRequest, ErrEmptyQuery.Error())
		return
	}

	pattern := "%" + query + "%"
	rows, err := s.db.Query(r.Context(), `
		SELECT id, title, artist, album, duration, file_path, cover_art, created_at
		FROM songs
		WHERE title ILIKE $1 OR artist ILIKE $1 OR album ILIKE $1
	`, pattern)
	if err != nil {
		log.Printf("songs: search: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	list, err := collectSongs(rows)
	if err != nil {
		log.Printf("songs: search scan: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, list)
}
