package songs

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	mw.Close()
	return buf, mw.FormDataContentType()
}

func TestHandleUploadSong(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		dir := t.TempDir()
		var inserted []any
		db := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				inserted = args
				return pgconn.CommandTag{}, nil
			},
		}
		srv := NewServer(db, nil, dir)

		body, contentType := multipartBody(t, map[string]string{
			"title":    "Road Song",
			"artist":   "The Drivers",
			"album":    "Highways",
			"duration": "245",
		}, "audio", "take1.ogg", []byte("not-really-audio"))

		req := httptest.NewRequest("POST", "/songs/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUploadSong(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var song Song
		if err := json.Unmarshal(rec.Body.Bytes(), &song); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if song.Title != "Road Song" || song.Duration != 245 {
			t.Errorf("song = %+v", song)
		}
		if !strings.HasPrefix(song.FilePath, "songs/") || !strings.HasSuffix(song.FilePath, ".ogg") {
			t.Errorf("file path %q should live under songs/ and keep the .ogg extension", song.FilePath)
		}

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(song.FilePath)))
		if err != nil {
			t.Fatalf("uploaded file missing: %v", err)
		}
		if string(data) != "not-really-audio" {
			t.Error("uploaded file content mismatch")
		}

		if len(inserted) == 0 {
			t.Error("no metadata row inserted")
		}
	})

	t.Run("Missing Title", func(t *testing.T) {
		srv := NewServer(&MockDB{}, nil, t.TempDir())

		body, contentType := multipartBody(t, map[string]string{
			"artist": "The Drivers",
		}, "audio", "take1.mp3", []byte("xx"))

		req := httptest.NewRequest("POST", "/songs/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUploadSong(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("want 400, got %d", rec.Code)
		}
	})

	t.Run("Missing Audio", func(t *testing.T) {
		srv := NewServer(&MockDB{}, nil, t.TempDir())

		body, contentType := multipartBody(t, map[string]string{
			"title":  "Road Song",
			"artist": "The Drivers",
		}, "", "", nil)

		req := httptest.NewRequest("POST", "/songs/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUploadSong(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("want 400, got %d", rec.Code)
		}
	})

	t.Run("Garbage Duration Defaults To Zero", func(t *testing.T) {
		db := &MockDB{}
		srv := NewServer(db, nil, t.TempDir())

		body, contentType := multipartBody(t, map[string]string{
			"title":    "Road Song",
			"artist":   "The Drivers",
			"duration": "-12",
		}, "audio", "take1.mp3", []byte("xx"))

		req := httptest.NewRequest("POST", "/songs/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUploadSong(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d", rec.Code)
		}
		var song Song
		json.Unmarshal(rec.Body.Bytes(), &song)
		if song.Duration != 0 {
			t.Errorf("duration = %d, want 0", song.Duration)
		}
	})
}
