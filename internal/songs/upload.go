package songs

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jainilbavishi24/spotify-clone/internal/httputil"
)

const maxUploadSize = 64 << 20

// handleUploadSong accepts a multipart form with title, artist, album,
// duration and the audio file. The file lands under
// <uploadDir>/songs/<uuid><ext>, keeping the original extension; only
// the relative path is stored with the metadata.
func (s *Server) handleUploadSong(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	artist := strings.TrimSpace(r.FormValue("artist"))
	album := strings.TrimSpace(r.FormValue("album"))

	duration, err := strconv.Atoi(r.FormValue("duration"))
	if err != nil || duration < 0 {
		duration = 0
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "missing required fields: title, artist, and audio file")
		return
	}
	defer file.Close()

	if title == "" || artist == "" {
		httputil.WriteError(w, http.StatusBadRequest, "missing required fields: title, artist, and audio file")
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".mp3"
	}
	relPath := "songs/" + uuid.New().String() + ext

	fullPath := filepath.Join(s.uploadDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		log.Printf("songs: upload mkdir: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		log.Printf("songs: upload create: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("songs: upload write: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	song := Song{
		ID:        uuid.New().String(),
		Title:     title,
		Artist:    artist,
		Album:     album,
		Duration:  duration,
		FilePath:  relPath,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Exec(r.Context(), `
		INSERT INTO songs (id, title, artist, album, duration, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, song.ID, song.Title, song.Artist, song.Album, song.Duration, song.FilePath, song.CreatedAt)
	if err != nil {
		log.Printf("songs: upload insert: %v", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to save song")
		return
	}

	s.events.Publish(r.Context(), "song.uploaded", map[string]any{
		"song": song,
	})

	httputil.WriteJSON(w, http.StatusCreated, song)
}
