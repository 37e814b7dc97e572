package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Menu is a menu board entry with an optional image
type Menu struct {
	ID          string           `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	ImageURL    *string          `gorm:"size:1024" json:"image_url"`
	ContentText JSONList[string] `json:"content_text"`
	CreatedAt   time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Section is one heading/content block of a franchise page
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Franchise is a franchise offering with up to twenty images
type Franchise struct {
	ID             string            `gorm:"type:char(36);primaryKey" json:"id"`
	Title          string            `gorm:"size:255;not null" json:"title"`
	Contents       JSONList[Section] `json:"contents"`
	ImagesURL      JSONList[string]  `json:"images_url"`
	LocationMapURL *string           `gorm:"size:2048" json:"location_map_url"`
	CreatedAt      time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Gallery is a single photo in the public gallery
type Gallery struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ImageURL  string    `gorm:"size:1024;not null" json:"image_url"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// FranchiseGallery is a named photo of a franchise outlet
type FranchiseGallery struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	ImageURL  string    `gorm:"size:1024;not null" json:"image_url"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// BeforeCreate assigns a UUID when none was set
func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	newID(&m.ID)
	return nil
}

// BeforeCreate assigns a UUID when none was set
func (f *Franchise) BeforeCreate(tx *gorm.DB) error {
	newID(&f.ID)
	return nil
}

// BeforeCreate assigns a UUID when none was set
func (g *Gallery) BeforeCreate(tx *gorm.DB) error {
	newID(&g.ID)
	return nil
}

// BeforeCreate assigns a UUID when none was set
func (g *FranchiseGallery) BeforeCreate(tx *gorm.DB) error {
	newID(&g.ID)
	return nil
}

// TableName overrides the table name for Menu
func (Menu) TableName() string {
	return "menus"
}

// TableName overrides the table name for Franchise
func (Franchise) TableName() string {
	return "franchises"
}

// TableName overrides the table name for Gallery
func (Gallery) TableName() string {
	return "galleries"
}

// TableName overrides the table name for FranchiseGallery
func (FranchiseGallery) TableName() string {
	return "franchise_galleries"
}
