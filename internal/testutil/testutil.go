// Package testutil builds databases, media stores and multipart payloads for tests.
package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/url"
	"testing"

	"github.com/localnerve/singletea-api/internal/database"
	"github.com/localnerve/singletea-api/internal/storage"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// BaseURL is the server URL test media stores build file URLs with
const BaseURL = "http://api.test"

// NewDB opens a migrated in-memory SQLite database. One connection keeps every
// query on the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// NewMedia returns a media store over an in-memory filesystem with its folders created
func NewMedia(t testing.TB, maxFileBytes int64) (*storage.MediaStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	media := storage.NewMediaStore(fs, BaseURL, maxFileBytes, zap.NewNop())
	if err := media.EnsureFolders(); err != nil {
		t.Fatalf("Failed to create upload folders: %v", err)
	}
	return media, fs
}

// PNG returns size bytes that sniff as image/png
func PNG(size int) []byte {
	sig := []byte("\x89PNG\r\n\x1a\n")
	if size < len(sig) {
		size = len(sig)
	}
	data := make([]byte, size)
	copy(data, sig)
	return data
}

// File is one part of a multipart body
type File struct {
	Field string
	Name  string
	Data  []byte
}

// Multipart encodes fields and files, returning the body and its content type
func Multipart(t testing.TB, fields url.Values, files ...File) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for key, vals := range fields {
		for _, v := range vals {
			if err := w.WriteField(key, v); err != nil {
				t.Fatalf("Failed to write field %s: %v", key, err)
			}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// FileHeaders round-trips files through a multipart body so services get real headers
func FileHeaders(t testing.TB, files ...File) []*multipart.FileHeader {
	t.Helper()
	for i := range files {
		if files[i].Field == "" {
			files[i].Field = "file"
		}
	}
	body, contentType := Multipart(t, nil, files...)
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("Failed to parse content type: %v", err)
	}
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(64 << 20)
	if err != nil {
		t.Fatalf("Failed to read multipart form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	var out []*multipart.FileHeader
	for _, f := range files {
		for _, fh := range form.File[f.Field] {
			if fh.Filename == f.Name && !contains(out, fh) {
				out = append(out, fh)
				break
			}
		}
	}
	return out
}

func contains(list []*multipart.FileHeader, fh *multipart.FileHeader) bool {
	for _, x := range list {
		if x == fh {
			return true
		}
	}
	return false
}
