package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/localnerve/singletea-api/internal/storage"
	"github.com/localnerve/singletea-api/internal/testutil"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fiveMB = 5 * 1024 * 1024

func TestSaveAndDelete(t *testing.T) {
	media, fs := testutil.NewMedia(t, fiveMB)
	ctx := context.Background()

	files := testutil.FileHeaders(t,
		testutil.File{Name: "chai one.png", Data: testutil.PNG(64)},
		testutil.File{Name: "chai two.png", Data: testutil.PNG(64)},
	)
	urls, err := media.Save(ctx, storage.KindFranchise, files)
	require.NoError(t, err)
	require.Len(t, urls, 2)

	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, testutil.BaseURL+"/upload/franchise/"), u)
		assert.True(t, media.Exists(u))
	}
	assert.NotEqual(t, urls[0], urls[1])
	assert.True(t, strings.HasSuffix(urls[0], "-chai_one.png"), urls[0])

	entries, err := afero.ReadDir(fs, "/franchise")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	media.DeleteAll(ctx, urls)
	for _, u := range urls {
		assert.False(t, media.Exists(u))
	}
}

func TestValidateRejectsBeforeWriting(t *testing.T) {
	media, fs := testutil.NewMedia(t, fiveMB)

	tests := []struct {
		name  string
		kind  storage.Kind
		files []testutil.File
		want  string
	}{
		{
			name:  "too large",
			kind:  storage.KindGallery,
			files: []testutil.File{{Name: "big.png", Data: testutil.PNG(fiveMB + 1)}},
			want:  types.FileTooLarge,
		},
		{
			name:  "not an image",
			kind:  storage.KindMenu,
			files: []testutil.File{{Name: "notes.txt", Data: []byte("plain text")}},
			want:  types.ValidationError,
		},
		{
			name: "too many for single image kind",
			kind: storage.KindMenu,
			files: []testutil.File{
				{Name: "a.png", Data: testutil.PNG(16)},
				{Name: "b.png", Data: testutil.PNG(16)},
			},
			want: types.ValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := media.Save(context.Background(), tt.kind, testutil.FileHeaders(t, tt.files...))
			require.Error(t, err)
			assert.True(t, types.IsType(err, tt.want), err.Error())

			entries, err := afero.ReadDir(fs, "/"+string(tt.kind))
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestFranchiseAcceptsTwentyFiles(t *testing.T) {
	media, _ := testutil.NewMedia(t, fiveMB)

	var files []testutil.File
	for i := 0; i < storage.MaxFranchiseImages+1; i++ {
		files = append(files, testutil.File{Name: "f.png", Data: testutil.PNG(16)})
	}
	headers := testutil.FileHeaders(t, files...)
	require.Len(t, headers, storage.MaxFranchiseImages+1)

	assert.NoError(t, media.Validate(storage.KindFranchise, headers[:storage.MaxFranchiseImages]))
	err := media.Validate(storage.KindFranchise, headers)
	assert.True(t, types.IsType(err, types.ValidationError))
}

func TestDeleteIgnoresForeignAndMissingURLs(t *testing.T) {
	media, fs := testutil.NewMedia(t, fiveMB)
	require.NoError(t, afero.WriteFile(fs, "/menu/keep.png", testutil.PNG(16), 0o644))

	ctx := context.Background()
	media.Delete(ctx, "http://api.test/upload/menu/missing.png")
	media.Delete(ctx, "http://api.test/upload/../../etc/passwd")
	media.Delete(ctx, "http://api.test/upload/other/keep.png")
	media.Delete(ctx, "")

	ok, err := afero.Exists(fs, "/menu/keep.png")
	require.NoError(t, err)
	assert.True(t, ok)

	media.Delete(ctx, "/upload/menu/keep.png")
	assert.False(t, media.Exists("/upload/menu/keep.png"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"my photo.png":        "my_photo.png",
		"../../etc/passwd":    "passwd",
		`C:\Users\a\pic.jpg`:  "pic.jpg",
		"chai*&^%.png":        "chai.png",
		"":                    "upload",
		"...":                 "upload",
		"tab\tand  space.png": "tab_and_space.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, storage.SanitizeFilename(in), in)
	}
}

func TestWritable(t *testing.T) {
	media, _ := testutil.NewMedia(t, fiveMB)
	assert.NoError(t, media.Writable())

	readOnly := storage.NewMediaStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), testutil.BaseURL, fiveMB, zap.NewNop())
	assert.Error(t, readOnly.Writable())
}
