package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/localnerve/singletea-api/internal/storage"
)

// Media is the part of the media store the entity services depend on
type Media interface {
	Validate(kind storage.Kind, files []*multipart.FileHeader) error
	Save(ctx context.Context, kind storage.Kind, files []*multipart.FileHeader) ([]string, error)
	Delete(ctx context.Context, fileURL string)
	DeleteAll(ctx context.Context, urls []string)
}

// trimmed returns the trimmed value of an optional field and whether it was provided
func trimmed(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return strings.TrimSpace(*v), true
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
