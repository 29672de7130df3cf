package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/mocks"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

type fixture struct {
	svc       *service.Services
	contents  *mocks.MockContentRepository
	donations *mocks.MockDonationRepository
	comments  *mocks.MockCommentRepository
	store     *mocks.MockFileStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	contents := mocks.NewMockContentRepository()
	f := &fixture{
		contents:  contents,
		donations: mocks.NewMockDonationRepository(),
		comments:  mocks.NewMockCommentRepository(contents),
		store:     mocks.NewMockFileStore(),
	}
	repos := &repository.Repositories{
		Content:  f.contents,
		Donation: f.donations,
		Comment:  f.comments,
	}
	cfg := &config.Config{
		Storage: config.StorageConfig{
			MaxImageSize:     1 * 1024 * 1024,
			MaxProofSize:     5 * 1024 * 1024,
			ThumbnailWidth:   400,
			EnableThumbnails: true,
		},
		Auth: config.AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "s3cret-pass",
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
		},
	}

	svc, err := service.NewServices(repos, f.store, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}
	f.svc = svc
	return f
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func (f *fixture) addContent(typ models.ContentType, published bool) *models.Content {
	c := &models.Content{
		ID:        uuid.New().String(),
		Title:     "Misa Jumat Pertama",
		Type:      typ,
		Published: published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if typ == models.ContentTypeImage {
		name := "1700000000000_gua.png"
		path := "/uploads/" + name
		thumb := "/uploads/thumb_" + name
		size := int64(2048)
		mime := "image/png"
		c.Filename, c.Path, c.ThumbnailPath, c.Size, c.MimeType = &name, &path, &thumb, &size, &mime
	}
	f.contents.Contents[c.ID] = c
	return c
}

func TestContentService_CreateImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	upload := &service.Upload{Filename: "Gua Maria.png", ContentType: "image/png", Data: pngBytes(t, 32, 16)}
	c, err := f.svc.Content.CreateImage(ctx, &models.ImageInput{Title: "  Gua Maria  "}, upload)
	if err != nil {
		t.Fatalf("CreateImage failed: %v", err)
	}

	if c.Type != models.ContentTypeImage {
		t.Errorf("Expected IMAGE, got %s", c.Type)
	}
	if c.Title != "Gua Maria" {
		t.Errorf("Expected trimmed title, got %q", c.Title)
	}
	if !c.Published {
		t.Error("Images should default to published")
	}
	if c.MimeType == nil || *c.MimeType != "image/png" {
		t.Errorf("Expected image/png mime type, got %v", c.MimeType)
	}
	if c.Path == nil || !strings.HasPrefix(*c.Path, "/uploads/") || !strings.HasSuffix(*c.Path, "_Gua_Maria.png") {
		t.Errorf("Unexpected path %v", c.Path)
	}
	if c.ThumbnailPath == nil {
		t.Fatal("Expected a thumbnail path")
	}
	if len(f.store.Files) != 2 {
		t.Errorf("Expected original and thumbnail to be written, got %d files", len(f.store.Files))
	}
}

func TestContentService_CreateImage_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		upload  *service.Upload
		wantErr error
	}{
		{
			name:    "over one megabyte",
			title:   "Besar",
			upload:  &service.Upload{Filename: "big.png", Data: make([]byte, 1024*1024+1)},
			wantErr: service.ErrFileTooLarge,
		},
		{
			name:    "not an image",
			title:   "Teks",
			upload:  &service.Upload{Filename: "notes.png", Data: []byte("just some plain text")},
			wantErr: service.ErrNotImage,
		},
		{
			name:    "no file",
			title:   "Kosong",
			upload:  nil,
			wantErr: service.ErrFileRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Content.CreateImage(context.Background(), &models.ImageInput{Title: tt.title}, tt.upload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(f.store.Files) != 0 {
				t.Error("Nothing should be written for a rejected upload")
			}
			if len(f.contents.Contents) != 0 {
				t.Error("No row should be created for a rejected upload")
			}
		})
	}
}

func TestContentService_CreateImage_RemovesFilesWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	f.contents.InsertError = errors.New("connection reset")

	upload := &service.Upload{Filename: "a.png", Data: pngBytes(t, 8, 8)}
	if _, err := f.svc.Content.CreateImage(context.Background(), &models.ImageInput{Title: "A"}, upload); err == nil {
		t.Fatal("Expected an error")
	}
	if len(f.store.Files) != 0 {
		t.Errorf("Expected written files to be cleaned up, %d left", len(f.store.Files))
	}
}

func TestContentService_CreateArticle(t *testing.T) {
	f := newFixture(t)

	title := "Ziarah Bulan Mei"
	body := "# Ziarah\n\nUmat berkumpul di **gua** untuk doa [rosario](https://example.org)."
	c, err := f.svc.Content.CreateArticle(context.Background(), &models.ArticleInput{Title: &title, Content: &body})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if c.Published {
		t.Error("Articles should default to unpublished")
	}
	if c.Excerpt == nil {
		t.Fatal("Expected an excerpt derived from the body")
	}
	if strings.ContainsAny(*c.Excerpt, "#*[]") {
		t.Errorf("Excerpt should be plain text, got %q", *c.Excerpt)
	}

	empty := "   "
	_, err = f.svc.Content.CreateArticle(context.Background(), &models.ArticleInput{Title: &empty})
	if !validation.IsValidationError(err) {
		t.Errorf("Expected validation error for empty title, got %v", err)
	}
}

func TestContentService_Get(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.addContent(models.ContentTypeArticle, false)

	if _, err := f.svc.Content.Get(ctx, draft.ID, false); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Unpublished content should be hidden from the public, got %v", err)
	}
	if _, err := f.svc.Content.Get(ctx, draft.ID, true); err != nil {
		t.Errorf("Admin should see unpublished content, got %v", err)
	}
	if _, err := f.svc.Content.Get(ctx, uuid.New().String(), true); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
	if _, err := f.svc.Content.Get(ctx, "not-a-uuid", true); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestContentService_Update(t *testing.T) {
	f := newFixture(t)
	article := f.addContent(models.ContentTypeArticle, false)

	published := true
	body := "Jadwal misa baru untuk bulan Oktober."
	empty := ""
	updated, err := f.svc.Content.Update(context.Background(), article.ID, &models.ArticleInput{
		Content:   &body,
		Excerpt:   &empty,
		Published: &published,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Published {
		t.Error("Expected content to be published")
	}
	if updated.Excerpt == nil || *updated.Excerpt != body {
		t.Errorf("Expected excerpt re-derived from new body, got %v", updated.Excerpt)
	}
	if updated.Title != article.Title {
		t.Errorf("Title should be untouched, got %q", updated.Title)
	}

	if _, err := f.svc.Content.Update(context.Background(), uuid.New().String(), &models.ArticleInput{}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestContentService_UpdateImage_ReplacesFile(t *testing.T) {
	f := newFixture(t)
	img := f.addContent(models.ContentTypeImage, true)
	oldPath, oldThumb := *img.Path, *img.ThumbnailPath

	upload := &service.Upload{Filename: "baru.png", Data: pngBytes(t, 12, 12)}
	updated, err := f.svc.Content.UpdateImage(context.Background(), img.ID, &models.ImageInput{}, upload)
	if err != nil {
		t.Fatalf("UpdateImage failed: %v", err)
	}
	if *updated.Path == oldPath {
		t.Error("Expected a new file path")
	}

	removed := strings.Join(f.store.Removed, ",")
	if !strings.Contains(removed, oldPath) || !strings.Contains(removed, oldThumb) {
		t.Errorf("Expected old file and thumbnail removed, got %v", f.store.Removed)
	}
}

func TestContentService_UpdateImage_FileOnArticle(t *testing.T) {
	f := newFixture(t)
	article := f.addContent(models.ContentTypeArticle, true)

	upload := &service.Upload{Filename: "x.png", Data: pngBytes(t, 4, 4)}
	_, err := f.svc.Content.UpdateImage(context.Background(), article.ID, &models.ImageInput{}, upload)
	if !validation.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestContentService_Delete(t *testing.T) {
	t.Run("image removes its files", func(t *testing.T) {
		f := newFixture(t)
		img := f.addContent(models.ContentTypeImage, true)

		if err := f.svc.Content.Delete(context.Background(), img.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(f.contents.DeletedIDs) != 1 {
			t.Error("Expected row to be deleted")
		}
		if len(f.store.Removed) != 2 || f.store.Removed[0] != *img.Path {
			t.Errorf("Expected file and thumbnail removal, got %v", f.store.Removed)
		}
	})

	t.Run("article never touches storage", func(t *testing.T) {
		f := newFixture(t)
		article := f.addContent(models.ContentTypeArticle, true)

		if err := f.svc.Content.Delete(context.Background(), article.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(f.store.Removed) != 0 {
			t.Errorf("Article delete should not remove files, got %v", f.store.Removed)
		}
	})

	t.Run("file removal failure is swallowed", func(t *testing.T) {
		f := newFixture(t)
		f.store.RemoveError = errors.New("permission denied")
		img := f.addContent(models.ContentTypeImage, true)

		if err := f.svc.Content.Delete(context.Background(), img.ID); err != nil {
			t.Fatalf("Delete should succeed when file removal fails, got %v", err)
		}
		if _, ok := f.contents.Contents[img.ID]; ok {
			t.Error("Row should stay deleted")
		}
	})

	t.Run("missing content", func(t *testing.T) {
		f := newFixture(t)
		if err := f.svc.Content.Delete(context.Background(), uuid.New().String()); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestStatsService(t *testing.T) {
	f := newFixture(t)
	f.addContent(models.ContentTypeImage, true)
	f.addContent(models.ContentTypeImage, false)
	f.addContent(models.ContentTypeArticle, true)
	f.donations.Donations["d1"] = &models.Donation{ID: "d1", Status: models.DonationStatusPending}
	f.donations.Donations["d2"] = &models.Donation{ID: "d2", Status: models.DonationStatusVerified}
	f.comments.Comments["c1"] = &models.Comment{ID: "c1", IsApproved: false}

	storageStats, err := f.svc.Stats.StorageStats(context.Background())
	if err != nil {
		t.Fatalf("StorageStats failed: %v", err)
	}
	if storageStats.TotalImages != 2 || storageStats.TotalSizeBytes != 4096 {
		t.Errorf("Unexpected storage stats %+v", storageStats)
	}

	dash, err := f.svc.Stats.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	want := models.DashboardStats{Articles: 1, Images: 2, Published: 2, PendingDonations: 1, PendingComments: 1}
	if *dash != want {
		t.Errorf("Expected %+v, got %+v", want, *dash)
	}
}
