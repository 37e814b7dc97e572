// franchise_service.go
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

package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/storage"
	"github.com/localnerve/singletea-api/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FranchiseInput carries the fields of a create or update.
// KeepImages lists existing image URLs to retain on update; nil retains all of them.
type FranchiseInput struct {
	Title          *string
	Contents       *[]models.Section
	LocationMapURL *string
	KeepImages     *[]string
}

// FranchiseService manages franchises and their image sets
type FranchiseService struct {
	DB    *gorm.DB
	Media Media
	Log   *zap.Logger
}

// List returns franchises in insertion order
func (s *FranchiseService) List(ctx context.Context) ([]models.Franchise, error) {
	var franchises []models.Franchise
	if err := s.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&franchises).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return franchises, nil
}

// Get returns one franchise
func (s *FranchiseService) Get(ctx context.Context, id string) (*models.Franchise, error) {
	var franchise models.Franchise
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&franchise).Error; err != nil {
		return nil, notFoundOr(err, "Franchise not found")
	}
	return &franchise, nil
}

// Create validates, stores up to MaxFranchiseImages images and inserts the franchise
func (s *FranchiseService) Create(ctx context.Context, in FranchiseInput, files []*multipart.FileHeader) (*models.Franchise, error) {
	title, _ := trimmed(in.Title)
	if title == "" {
		return nil, types.NewValidationError("Title is required")
	}
	if in.Contents == nil {
		return nil, types.NewValidationError("Contents are required")
	}
	contents, err := validSections(*in.Contents)
	if err != nil {
		return nil, err
	}
	if err := s.Media.Validate(storage.KindFranchise, files); err != nil {
		return nil, err
	}

	franchise := &models.Franchise{
		Title:     title,
		Contents:  contents,
		ImagesURL: models.JSONList[string]{},
	}
	if mapURL, ok := trimmed(in.LocationMapURL); ok {
		franchise.LocationMapURL = optionalString(mapURL)
	}

	urls, err := s.Media.Save(ctx, storage.KindFranchise, files)
	if err != nil {
		return nil, err
	}
	franchise.ImagesURL = append(franchise.ImagesURL, urls...)

	if err := s.DB.WithContext(ctx).Create(franchise).Error; err != nil {
		s.Media.DeleteAll(ctx, urls)
		return nil, types.NewServerError(err)
	}
	s.Log.Info("franchise created", zap.String("id", franchise.ID), zap.Int("images", len(urls)))
	return franchise, nil
}

// Update merges fields and reconciles images: existing images not retained are
// deleted, new uploads are appended after the retained ones.
func (s *FranchiseService) Update(ctx context.Context, id string, in FranchiseInput, files []*multipart.FileHeader) (*models.Franchise, error) {
	franchise, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if title, ok := trimmed(in.Title); ok && title != "" {
		franchise.Title = title
	}
	if in.Contents != nil {
		contents, err := validSections(*in.Contents)
		if err != nil {
			return nil, err
		}
		franchise.Contents = contents
	}
	if mapURL, ok := trimmed(in.LocationMapURL); ok {
		franchise.LocationMapURL = optionalString(mapURL)
	}

	retained, removed := reconcileImages(franchise.ImagesURL, in.KeepImages)
	if len(retained)+len(files) > storage.MaxFranchiseImages {
		return nil, types.NewValidationError("A franchise can have at most %d images", storage.MaxFranchiseImages)
	}
	if err := s.Media.Validate(storage.KindFranchise, files); err != nil {
		return nil, err
	}

	s.Media.DeleteAll(ctx, removed)
	urls, err := s.Media.Save(ctx, storage.KindFranchise, files)
	if err != nil {
		return nil, err
	}
	franchise.ImagesURL = append(models.JSONList[string](retained), urls...)

	if err := s.DB.WithContext(ctx).Save(franchise).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return franchise, nil
}

// Delete removes the franchise, then every image it references
func (s *FranchiseService) Delete(ctx context.Context, id string) error {
	franchise, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(franchise).Error; err != nil {
		return types.NewServerError(err)
	}
	s.Media.DeleteAll(ctx, franchise.ImagesURL)
	s.Log.Info("franchise deleted", zap.String("id", id))
	return nil
}

// reconcileImages splits existing into the URLs to retain, in the order keep lists
// them, and the URLs to remove. Entries of keep that are not existing URLs are ignored.
func reconcileImages(existing []string, keep *[]string) (retained, removed []string) {
	if keep == nil {
		return append([]string{}, existing...), nil
	}

	current := make(map[string]bool, len(existing))
	for _, u := range existing {
		current[u] = true
	}
	kept := make(map[string]bool, len(*keep))
	retained = []string{}
	for _, u := range *keep {
		u = strings.TrimSpace(u)
		if current[u] && !kept[u] {
			kept[u] = true
			retained = append(retained, u)
		}
	}
	for _, u := range existing {
		if !kept[u] {
			removed = append(removed, u)
		}
	}
	return retained, removed
}

func validSections(sections []models.Section) (models.JSONList[models.Section], error) {
	if len(sections) == 0 {
		return nil, types.NewValidationError("At least one content section is required")
	}
	out := make(models.JSONList[models.Section], 0, len(sections))
	for i, sec := range sections {
		sec.Heading = strings.TrimSpace(sec.Heading)
		sec.Content = strings.TrimSpace(sec.Content)
		if sec.Heading == "" || sec.Content == "" {
			return nil, types.NewValidationError("Content section %d needs a heading and content", i+1)
		}
		out = append(out, sec)
	}
	return out, nil
}
