// content_test.go
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

package services_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/storage"
	"github.com/localnerve/singletea-api/internal/testutil"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxBytes = 5 * 1024 * 1024

type fixture struct {
	db    *gorm.DB
	media *storage.MediaStore
	fs    afero.Fs
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	media, fs := testutil.NewMedia(t, maxBytes)
	return fixture{db: testutil.NewDB(t), media: media, fs: fs}
}

func images(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	files := make([]testutil.File, 0, len(names))
	for _, n := range names {
		files = append(files, testutil.File{Name: n, Data: testutil.PNG(128)})
	}
	return testutil.FileHeaders(t, files...)
}

func strp(s string) *string { return &s }

func countFiles(t *testing.T, fs afero.Fs, kind storage.Kind) int {
	t.Helper()
	entries, err := afero.ReadDir(fs, "/"+string(kind))
	require.NoError(t, err)
	return len(entries)
}

func TestMenuLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := &services.MenuService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	lines := []string{"Masala chai", " ", "Ginger tea"}
	menu, err := svc.Create(ctx, services.MenuInput{Title: strp("Hot"), ContentText: &lines}, nil)
	require.NoError(t, err)
	assert.Nil(t, menu.ImageURL)
	assert.Equal(t, models.JSONList[string]{"Masala chai", "Ginger tea"}, menu.ContentText)

	updated, err := svc.Update(ctx, menu.ID, services.MenuInput{}, images(t, "hot.png"))
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	first := *updated.ImageURL
	assert.True(t, f.media.Exists(first))
	assert.Equal(t, "Hot", updated.Title)
	assert.Equal(t, models.JSONList[string]{"Masala chai", "Ginger tea"}, updated.ContentText)

	replaced, err := svc.Update(ctx, menu.ID, services.MenuInput{Title: strp("Hot drinks")}, images(t, "hot2.png"))
	require.NoError(t, err)
	assert.False(t, f.media.Exists(first))
	assert.True(t, f.media.Exists(*replaced.ImageURL))
	assert.Equal(t, 1, countFiles(t, f.fs, storage.KindMenu))

	got, err := svc.Get(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hot drinks", got.Title)
	assert.Equal(t, *replaced.ImageURL, *got.ImageURL)

	require.NoError(t, svc.Delete(ctx, menu.ID))
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindMenu))
	_, err = svc.Get(ctx, menu.ID)
	assert.True(t, types.IsType(err, types.NotFound))
	assert.True(t, types.IsType(svc.Delete(ctx, menu.ID), types.NotFound))
}

func TestMenuCreateRequiresTitle(t *testing.T) {
	f := newFixture(t)
	svc := &services.MenuService{DB: f.db, Media: f.media, Log: zap.NewNop()}

	_, err := svc.Create(context.Background(), services.MenuInput{Title: strp("  ")}, images(t, "a.png"))
	assert.True(t, types.IsType(err, types.ValidationError))
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindMenu))
}

func TestMenuListOrder(t *testing.T) {
	f := newFixture(t)
	svc := &services.MenuService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, services.MenuInput{Title: strp(title)}, nil)
		require.NoError(t, err)
	}
	menus, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 3)
	assert.Equal(t, "one", menus[0].Title)
	assert.Equal(t, "three", menus[2].Title)
}

func TestFranchiseImageReconciliation(t *testing.T) {
	f := newFixture(t)
	svc := &services.FranchiseService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	contents := []models.Section{{Heading: "About", Content: "Tea since 2019"}}
	franchise, err := svc.Create(ctx, services.FranchiseInput{
		Title:    strp("Pune"),
		Contents: &contents,
	}, images(t, "a.png", "b.png", "c.png"))
	require.NoError(t, err)
	require.Len(t, franchise.ImagesURL, 3)
	a, b, c := franchise.ImagesURL[0], franchise.ImagesURL[1], franchise.ImagesURL[2]

	keep := []string{a, b, "http://elsewhere.test/upload/franchise/not-ours.png"}
	updated, err := svc.Update(ctx, franchise.ID, services.FranchiseInput{KeepImages: &keep}, images(t, "d.png"))
	require.NoError(t, err)
	require.Len(t, updated.ImagesURL, 3)
	assert.Equal(t, a, updated.ImagesURL[0])
	assert.Equal(t, b, updated.ImagesURL[1])
	d := updated.ImagesURL[2]
	assert.True(t, f.media.Exists(d))
	assert.False(t, f.media.Exists(c))
	assert.Equal(t, 3, countFiles(t, f.fs, storage.KindFranchise))
	assert.Equal(t, "Pune", updated.Title)
	assert.Equal(t, "About", updated.Contents[0].Heading)

	// omitting the retain list keeps every image
	same, err := svc.Update(ctx, franchise.ID, services.FranchiseInput{Title: strp("Pune West")}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.JSONList[string]{a, b, d}, same.ImagesURL)

	require.NoError(t, svc.Delete(ctx, franchise.ID))
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindFranchise))
}

func TestFranchiseImageCap(t *testing.T) {
	f := newFixture(t)
	svc := &services.FranchiseService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	names := make([]string, 0, storage.MaxFranchiseImages)
	for i := 0; i < storage.MaxFranchiseImages; i++ {
		names = append(names, "img.png")
	}
	contents := []models.Section{{Heading: "H", Content: "C"}}
	franchise, err := svc.Create(ctx, services.FranchiseInput{Title: strp("Full"), Contents: &contents}, images(t, names...))
	require.NoError(t, err)
	require.Len(t, franchise.ImagesURL, storage.MaxFranchiseImages)

	_, err = svc.Update(ctx, franchise.ID, services.FranchiseInput{}, images(t, "extra.png"))
	assert.True(t, types.IsType(err, types.ValidationError))
	assert.Equal(t, storage.MaxFranchiseImages, countFiles(t, f.fs, storage.KindFranchise))

	got, err := svc.Get(ctx, franchise.ID)
	require.NoError(t, err)
	assert.Len(t, got.ImagesURL, storage.MaxFranchiseImages)
}

func TestFranchiseValidation(t *testing.T) {
	f := newFixture(t)
	svc := &services.FranchiseService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	empty := []models.Section{}
	incomplete := []models.Section{{Heading: "H"}}
	tests := map[string]services.FranchiseInput{
		"no title":           {Contents: &incomplete},
		"no contents":        {Title: strp("T")},
		"empty contents":     {Title: strp("T"), Contents: &empty},
		"incomplete section": {Title: strp("T"), Contents: &incomplete},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in, images(t, "a.png"))
			assert.True(t, types.IsType(err, types.ValidationError))
		})
	}
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindFranchise))
}

func TestGalleryRejectsOversizeWithoutSideEffects(t *testing.T) {
	f := newFixture(t)
	svc := &services.GalleryService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	big := testutil.FileHeaders(t, testutil.File{Name: "big.png", Data: testutil.PNG(maxBytes + 1)})
	_, err := svc.Create(ctx, big)
	assert.True(t, types.IsType(err, types.FileTooLarge))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindGallery))

	_, err = svc.Create(ctx, nil)
	assert.True(t, types.IsType(err, types.ValidationError))
}

func TestGalleryLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := &services.GalleryService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	item, err := svc.Create(ctx, images(t, "shop.png"))
	require.NoError(t, err)
	old := item.ImageURL

	_, err = svc.Update(ctx, item.ID, nil)
	assert.True(t, types.IsType(err, types.ValidationError))

	updated, err := svc.Update(ctx, item.ID, images(t, "shop2.png"))
	require.NoError(t, err)
	assert.False(t, f.media.Exists(old))
	assert.True(t, f.media.Exists(updated.ImageURL))

	require.NoError(t, svc.Delete(ctx, item.ID))
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindGallery))
}

func TestFranchiseGalleryName(t *testing.T) {
	f := newFixture(t)
	svc := &services.FranchiseGalleryService{DB: f.db, Media: f.media, Log: zap.NewNop()}
	ctx := context.Background()

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Create(ctx, services.FranchiseGalleryInput{Name: strp(string(long))}, images(t, "a.png"))
	assert.True(t, types.IsType(err, types.ValidationError))
	_, err = svc.Create(ctx, services.FranchiseGalleryInput{}, images(t, "a.png"))
	assert.True(t, types.IsType(err, types.ValidationError))
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindFranchiseGallery))

	item, err := svc.Create(ctx, services.FranchiseGalleryInput{Name: strp("Opening day")}, images(t, "a.png"))
	require.NoError(t, err)

	renamed, err := svc.Update(ctx, item.ID, services.FranchiseGalleryInput{Name: strp("Launch")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Launch", renamed.Name)
	assert.Equal(t, item.ImageURL, renamed.ImageURL)
	assert.True(t, f.media.Exists(renamed.ImageURL))
}

// failingMedia accepts every upload but cannot write
type failingMedia struct {
	*storage.MediaStore
}

func (failingMedia) Save(context.Context, storage.Kind, []*multipart.FileHeader) ([]string, error) {
	return nil, types.NewServerError(errors.New("disk full"))
}

func TestCreateFailsWhenMediaCannotWrite(t *testing.T) {
	f := newFixture(t)
	svc := &services.GalleryService{DB: f.db, Media: failingMedia{f.media}, Log: zap.NewNop()}

	_, err := svc.Create(context.Background(), images(t, "a.png"))
	assert.True(t, types.IsType(err, types.ServerError))
	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
