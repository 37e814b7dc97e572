package services

import (
	"context"
	"mime/multipart"
	"unicode/utf8"

	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/storage"
	"github.com/localnerve/singletea-api/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxFranchiseGalleryName bounds FranchiseGallery.Name
const maxFranchiseGalleryName = 100

// GalleryService manages site gallery images
type GalleryService struct {
	DB    *gorm.DB
	Media Media
	Log   *zap.Logger
}

// List returns gallery entries newest first
func (s *GalleryService) List(ctx context.Context) ([]models.Gallery, error) {
	var items []models.Gallery
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return items, nil
}

func (s *GalleryService) Get(ctx context.Context, id string) (*models.Gallery, error) {
	var item models.Gallery
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, "Gallery image not found")
	}
	return &item, nil
}

// Create stores the image and inserts the entry
func (s *GalleryService) Create(ctx context.Context, files []*multipart.FileHeader) (*models.Gallery, error) {
	if len(files) == 0 {
		return nil, types.NewValidationError("Image is required")
	}
	urls, err := s.Media.Save(ctx, storage.KindGallery, files)
	if err != nil {
		return nil, err
	}
	item := &models.Gallery{ImageURL: urls[0]}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		s.Media.DeleteAll(ctx, urls)
		return nil, types.NewServerError(err)
	}
	s.Log.Info("gallery image created", zap.String("id", item.ID))
	return item, nil
}

// Update replaces the image; a new upload is required
func (s *GalleryService) Update(ctx context.Context, id string, files []*multipart.FileHeader) (*models.Gallery, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, types.NewValidationError("Image is required")
	}
	if err := s.Media.Validate(storage.KindGallery, files); err != nil {
		return nil, err
	}

	s.Media.Delete(ctx, item.ImageURL)
	urls, err := s.Media.Save(ctx, storage.KindGallery, files)
	if err != nil {
		return nil, err
	}
	item.ImageURL = urls[0]
	if err := s.DB.WithContext(ctx).Save(item).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return item, nil
}

func (s *GalleryService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(item).Error; err != nil {
		return types.NewServerError(err)
	}
	s.Media.Delete(ctx, item.ImageURL)
	return nil
}

// FranchiseGalleryInput carries the fields of a create or update
type FranchiseGalleryInput struct {
	Name *string
}

// FranchiseGalleryService manages named franchise gallery images
type FranchiseGalleryService struct {
	DB    *gorm.DB
	Media Media
	Log   *zap.Logger
}

// List returns franchise gallery entries newest first
func (s *FranchiseGalleryService) List(ctx context.Context) ([]models.FranchiseGallery, error) {
	var items []models.FranchiseGallery
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return items, nil
}

func (s *FranchiseGalleryService) Get(ctx context.Context, id string) (*models.FranchiseGallery, error) {
	var item models.FranchiseGallery
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, "Franchise gallery image not found")
	}
	return &item, nil
}

// Create validates the name, stores the image and inserts the entry
func (s *FranchiseGalleryService) Create(ctx context.Context, in FranchiseGalleryInput, files []*multipart.FileHeader) (*models.FranchiseGallery, error) {
	name, _ := trimmed(in.Name)
	if err := validGalleryName(name); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, types.NewValidationError("Image is required")
	}
	if err := s.Media.Validate(storage.KindFranchiseGallery, files); err != nil {
		return nil, err
	}

	urls, err := s.Media.Save(ctx, storage.KindFranchiseGallery, files)
	if err != nil {
		return nil, err
	}
	item := &models.FranchiseGallery{Name: name, ImageURL: urls[0]}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		s.Media.DeleteAll(ctx, urls)
		return nil, types.NewServerError(err)
	}
	s.Log.Info("franchise gallery image created", zap.String("id", item.ID))
	return item, nil
}

// Update merges the name; a new upload replaces the image
func (s *FranchiseGalleryService) Update(ctx context.Context, id string, in FranchiseGalleryInput, files []*multipart.FileHeader) (*models.FranchiseGallery, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name, ok := trimmed(in.Name); ok && name != "" {
		if err := validGalleryName(name); err != nil {
			return nil, err
		}
		item.Name = name
	}
	if err := s.Media.Validate(storage.KindFranchiseGallery, files); err != nil {
		return nil, err
	}

	if len(files) > 0 {
		s.Media.Delete(ctx, item.ImageURL)
		urls, err := s.Media.Save(ctx, storage.KindFranchiseGallery, files)
		if err != nil {
			return nil, err
		}
		item.ImageURL = urls[0]
	}
	if err := s.DB.WithContext(ctx).Save(item).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return item, nil
}

func (s *FranchiseGalleryService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(item).Error; err != nil {
		return types.NewServerError(err)
	}
	s.Media.Delete(ctx, item.ImageURL)
	return nil
}

func validGalleryName(name string) error {
	if name == "" {
		return types.NewValidationError("Name is required")
	}
	if utf8.RuneCountInString(name) > maxFranchiseGalleryName {
		return types.NewValidationError("Name must be at most %d characters", maxFranchiseGalleryName)
	}
	return nil
}
