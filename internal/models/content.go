package models

import (
	"time"
)

// ContentType distinguishes articles from gallery images
type ContentType string

const (
	ContentTypeImage   ContentType = "IMAGE"
	ContentTypeArticle ContentType = "ARTICLE"
)

// ValidContentTypes defines allowed content types
var ValidContentTypes = map[ContentType]bool{
	ContentTypeImage:   true,
	ContentTypeArticle: true,
}

// Content represents an article or an uploaded image
type Content struct {
	ID            string      `json:"id" db:"id"`
	Title         string      `json:"title" db:"title"`
	Type          ContentType `json:"type" db:"type"`
	Description   *string     `json:"description" db:"description"`
	Body          *string     `json:"content" db:"content"`
	Excerpt       *string     `json:"excerpt" db:"excerpt"`
	Filename      *string     `json:"filename" db:"filename"`
	Path          *string     `json:"path" db:"path"`
	ThumbnailPath *string     `json:"thumbnailPath" db:"thumbnail_path"`
	Size          *int64      `json:"size" db:"size"`
	MimeType      *string     `json:"mimeType" db:"mime_type"`
	Published     bool        `json:"published" db:"published"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// HasFile reports whether the row owns a file in the uploads directory
func (c *Content) HasFile() bool {
	return c.Type == ContentTypeImage && c.Filename != nil && *c.Filename != ""
}

// ContentFilter narrows content listings
type ContentFilter struct {
	Type          ContentType
	PublishedOnly bool
}

// ArticleInput is the JSON body for creating or updating content.
// Nil fields are left untouched on update.
type ArticleInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt"`
	Published   *bool   `json:"published"`
}

// ImageInput carries the metadata part of a multipart image upload
// Nil fields were absent from the form.
type ImageInput struct {
	Title       string
	Description *string
	Published   *bool
}

// ContentPatch is the set of columns an update writes
type ContentPatch struct {
	Title         *string
	Description   *string
	Body          *string
	Excerpt       *string
	Published     *bool
	File          *StoredFile
	ThumbnailPath *string
}

// StoredFile describes a file written to the uploads directory
type StoredFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// StorageStats summarises disk usage of uploaded images
type StorageStats struct {
	TotalImages    int     `json:"totalImages"`
	TotalSizeBytes int64   `json:"totalSizeBytes"`
	TotalSizeMB    float64 `json:"totalSizeMB"`
}
