// media.go
//
// Content and media service for the Single Tea India website
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of singletea-api.
// singletea-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// singletea-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with singletea-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package storage keeps uploaded images on a filesystem, one folder per
// entity kind, and maps them to public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/localnerve/singletea-api/internal/metrics"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Kind names the folder an entity's files live in.
type Kind string

const (
	KindMenu             Kind = "menu"
	KindFranchise        Kind = "franchise"
	KindFranchiseGallery Kind = "franchiseGallery"
	KindGallery          Kind = "gallery"
)

// Kinds lists every upload folder.
var Kinds = []Kind{KindMenu, KindFranchise, KindFranchiseGallery, KindGallery}

// URLPrefix is the path files are served under.
const URLPrefix = "/upload"

// MaxFranchiseImages caps the images a franchise may reference.
const MaxFranchiseImages = 20

func (k Kind) valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// MaxFiles is the number of files one request may attach for the kind.
func (k Kind) MaxFiles() int {
	if k == KindFranchise {
		return MaxFranchiseImages
	}
	return 1
}

// MediaStore writes and removes uploaded files.
type MediaStore struct {
	fs           afero.Fs
	baseURL      string
	maxFileBytes int64
	log          *zap.Logger
	now          func() time.Time

	mu   sync.Mutex
	last int64
}

// NewMediaStore returns a store rooted at fs. baseURL is the public server URL
// used to build absolute file URLs.
func NewMediaStore(fs afero.Fs, baseURL string, maxFileBytes int64, log *zap.Logger) *MediaStore {
	return &MediaStore{
		fs:           fs,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		maxFileBytes: maxFileBytes,
		log:          log,
		now:          time.Now,
	}
}

// NewOsMediaStore returns a store over the directory root on disk.
func NewOsMediaStore(root, baseURL string, maxFileBytes int64, log *zap.Logger) *MediaStore {
	return NewMediaStore(afero.NewBasePathFs(afero.NewOsFs(), root), baseURL, maxFileBytes, log)
}

// FileSystem exposes the stored files for static serving.
func (m *MediaStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(m.fs)
}

// EnsureFolders creates one folder per kind.
func (m *MediaStore) EnsureFolders() error {
	for _, kind := range Kinds {
		if err := m.fs.MkdirAll(filePath(kind, ""), 0o755); err != nil {
			return fmt.Errorf("create upload folder %s: %w", kind, err)
		}
		m.log.Debug("upload folder ready", zap.String("kind", string(kind)))
	}
	return nil
}

// Writable reports whether every kind folder exists and accepts files.
func (m *MediaStore) Writable() error {
	for _, kind := range Kinds {
		probe := filePath(kind, ".probe")
		f, err := m.fs.Create(probe)
		if err != nil {
			return fmt.Errorf("upload folder %s not writable: %w", kind, err)
		}
		_ = f.Close()
		_ = m.fs.Remove(probe)
	}
	return nil
}

// Validate checks count, size and content type of files before any write.
func (m *MediaStore) Validate(kind Kind, files []*multipart.FileHeader) error {
	if !kind.valid() {
		return fmt.Errorf("unknown media kind %q", kind)
	}
	if len(files) > kind.MaxFiles() {
		return types.NewValidationError("At most %d file(s) may be uploaded", kind.MaxFiles())
	}
	for _, fh := range files {
		if fh.Size > m.maxFileBytes {
			return types.NewFileTooLarge(fh.Filename, m.maxFileBytes)
		}
		if err := checkImage(fh); err != nil {
			return err
		}
	}
	return nil
}

// Save validates and writes files, returning their public URLs in input order.
// A failed write removes whatever this call already wrote.
func (m *MediaStore) Save(ctx context.Context, kind Kind, files []*multipart.FileHeader) ([]string, error) {
	if err := m.Validate(kind, files); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		if err := ctx.Err(); err != nil {
			m.DeleteAll(ctx, urls)
			return nil, err
		}
		name, err := m.write(kind, fh)
		if err != nil {
			m.DeleteAll(ctx, urls)
			return nil, types.NewServerError(err)
		}
		metrics.MediaFilesStored.WithLabelValues(string(kind)).Inc()
		urls = append(urls, m.URL(kind, name))
	}
	return urls, nil
}

func (m *MediaStore) write(kind Kind, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	name := m.fileName(fh.Filename)
	dst, err := m.fs.OpenFile(filePath(kind, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, io.LimitReader(src, m.maxFileBytes+1)); err != nil {
		_ = dst.Close()
		_ = m.fs.Remove(filePath(kind, name))
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	m.log.Debug("stored upload", zap.String("kind", string(kind)), zap.String("file", name))
	return name, nil
}

// fileName is {timestamp}-{sanitized original}; the timestamp is strictly
// increasing within the process so two uploads never share a name.
func (m *MediaStore) fileName(original string) string {
	m.mu.Lock()
	ts := m.now().UnixMilli()
	if ts <= m.last {
		ts = m.last + 1
	}
	m.last = ts
	m.mu.Unlock()

	return strconv.FormatInt(ts, 10) + "-" + SanitizeFilename(original)
}

// filePath is the rooted location of a file inside the store
func filePath(kind Kind, name string) string {
	return path.Join("/", string(kind), name)
}

// URL builds the public URL of a stored file.
func (m *MediaStore) URL(kind Kind, name string) string {
	return m.baseURL + URLPrefix + "/" + string(kind) + "/" + name
}

// Delete removes the file behind a public URL. Failures are logged and
// counted, never returned.
func (m *MediaStore) Delete(ctx context.Context, fileURL string) {
	if fileURL == "" {
		return
	}
	kind, name, err := m.resolve(fileURL)
	if err != nil {
		m.log.Warn("skipping file cleanup", zap.String("url", fileURL), zap.Error(err))
		metrics.MediaCleanupFailures.WithLabelValues("unknown").Inc()
		return
	}
	if err := m.fs.Remove(filePath(kind, name)); err != nil {
		m.log.Warn("failed to delete file", zap.String("url", fileURL), zap.Error(err))
		metrics.MediaCleanupFailures.WithLabelValues(string(kind)).Inc()
		return
	}
	m.log.Debug("deleted file", zap.String("kind", string(kind)), zap.String("file", name))
}

// DeleteAll calls Delete for every URL.
func (m *MediaStore) DeleteAll(ctx context.Context, urls []string) {
	for _, u := range urls {
		m.Delete(ctx, u)
	}
}

// Exists reports whether the file behind a public URL is on disk.
func (m *MediaStore) Exists(fileURL string) bool {
	kind, name, err := m.resolve(fileURL)
	if err != nil {
		return false
	}
	ok, err := afero.Exists(m.fs, filePath(kind, name))
	return err == nil && ok
}

// resolve maps a URL (absolute or path-only) to its kind folder and file name.
func (m *MediaStore) resolve(fileURL string) (Kind, string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", "", fmt.Errorf("parse url: %w", err)
	}
	p := path.Clean("/" + u.Path)
	rest, ok := strings.CutPrefix(p, URLPrefix+"/")
	if !ok {
		return "", "", fmt.Errorf("not an upload path: %s", p)
	}
	kindStr, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" || strings.Contains(name, "/") || name == "." || name == ".." {
		return "", "", fmt.Errorf("malformed upload path: %s", p)
	}
	kind := Kind(kindStr)
	if !kind.valid() {
		return "", "", fmt.Errorf("unknown media kind %q", kindStr)
	}
	return kind, name, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
var whitespace = regexp.MustCompile(`\s+`)

// SanitizeFilename keeps the base name, replaces whitespace runs with "_" and
// drops anything outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = whitespace.ReplaceAllString(name, "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "upload"
	}
	if len(name) > 120 {
		name = name[len(name)-120:]
	}
	return name
}

// checkImage sniffs the first bytes of the upload.
func checkImage(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return types.NewValidationError("File %q could not be read", fh.Filename)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return types.NewValidationError("File %q could not be read", fh.Filename)
	}
	ct := http.DetectContentType(head[:n])
	if !strings.HasPrefix(ct, "image/") {
		return types.NewValidationError("File %q is not an image", fh.Filename)
	}
	return nil
}
