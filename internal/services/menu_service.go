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

// MenuInput carries the fields of a create or update. Nil fields are left unchanged on update.
type MenuInput struct {
	Title       *string
	ContentText *[]string
}

// MenuService manages menus and their single image
type MenuService struct {
	DB    *gorm.DB
	Media Media
	Log   *zap.Logger
}

// List returns menus in insertion order
func (s *MenuService) List(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	if err := s.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&menus).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return menus, nil
}

// Get returns one menu
func (s *MenuService) Get(ctx context.Context, id string) (*models.Menu, error) {
	var menu models.Menu
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&menu).Error; err != nil {
		return nil, notFoundOr(err, "Menu not found")
	}
	return &menu, nil
}

// Create validates, stores the optional image and inserts the menu
func (s *MenuService) Create(ctx context.Context, in MenuInput, files []*multipart.FileHeader) (*models.Menu, error) {
	title, _ := trimmed(in.Title)
	if title == "" {
		return nil, types.NewValidationError("Title is required")
	}
	if err := s.Media.Validate(storage.KindMenu, files); err != nil {
		return nil, err
	}

	menu := &models.Menu{Title: title, ContentText: models.JSONList[string]{}}
	if in.ContentText != nil {
		menu.ContentText = cleanLines(*in.ContentText)
	}

	urls, err := s.Media.Save(ctx, storage.KindMenu, files)
	if err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		menu.ImageURL = &urls[0]
	}

	if err := s.DB.WithContext(ctx).Create(menu).Error; err != nil {
		s.Media.DeleteAll(ctx, urls)
		return nil, types.NewServerError(err)
	}
	s.Log.Info("menu created", zap.String("id", menu.ID))
	return menu, nil
}

// Update merges fields; a new image replaces and deletes the previous one
func (s *MenuService) Update(ctx context.Context, id string, in MenuInput, files []*multipart.FileHeader) (*models.Menu, error) {
	menu, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Media.Validate(storage.KindMenu, files); err != nil {
		return nil, err
	}

	if title, ok := trimmed(in.Title); ok && title != "" {
		menu.Title = title
	}
	if in.ContentText != nil {
		menu.ContentText = cleanLines(*in.ContentText)
	}

	if len(files) > 0 {
		if menu.ImageURL != nil {
			s.Media.Delete(ctx, *menu.ImageURL)
		}
		urls, err := s.Media.Save(ctx, storage.KindMenu, files)
		if err != nil {
			return nil, err
		}
		menu.ImageURL = &urls[0]
	}

	if err := s.DB.WithContext(ctx).Save(menu).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return menu, nil
}

// Delete removes the menu, then its image
func (s *MenuService) Delete(ctx context.Context, id string) error {
	menu, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(menu).Error; err != nil {
		return types.NewServerError(err)
	}
	if menu.ImageURL != nil {
		s.Media.Delete(ctx, *menu.ImageURL)
	}
	s.Log.Info("menu deleted", zap.String("id", id))
	return nil
}

// cleanLines trims entries and drops empty ones, keeping order
func cleanLines(lines []string) models.JSONList[string] {
	out := make(models.JSONList[string], 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
