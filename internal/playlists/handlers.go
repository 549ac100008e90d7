package playlists

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jainilbavishi24/spotify-clone/internal/auth"
	"github.com/jainilbavishi24/spotify-clone/internal/httputil"
)

type CreatePlaylistRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type AddSongRequest struct {
	SongID string `json:"songId"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := auth.UserIDFrom(ctx)
	if ownerID == "" {
		httputil.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		httputil.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	pl, err := s.createPlaylist(ctx, ownerID, body.Name, body.Description)
	if err != nil {
		log.Printf("playlists: create: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.events.Publish(ctx, "playlist.created", map[string]any{
		"playlist": pl,
	})

	httputil.WriteJSON(w, http.StatusCreated, pl)
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := auth.UserIDFrom(ctx)
	if ownerID == "" {
		httputil.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	list, err := s.playlistsForOwner(ctx, ownerID)
	if err != nil {
		log.Printf("playlists: list: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID := chi.URLParam(r, "id")

	pl, err := s.playlistWithSongs(ctx, playlistID)
	if err != nil {
		if errors.Is(err, ErrPlaylistNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "playlist not found")
			return
		}
		log.Printf("playlists: get %s: %v", playlistID, err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pl)
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFrom(ctx)
	if userID == "" {
		httputil.WriteError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	playlistID := chi.URLParam(r, "id")

	var body AddSongRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SongID == "" {
		httputil.WriteError(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := s.canModify(ctx, userID, playlistID); err != nil {
		httputil.WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	ps, err := s.addSong(ctx, playlistID, body.SongID)
	if err != nil {
		log.Printf("playlists: add song: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.events.Publish(ctx, "playlist.song_added", map[string]any{
		"playlistId": playlistID,
		"membership": ps,
	})

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "song added to playlist",
		"position": ps.Position,
	})
}
