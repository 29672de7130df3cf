package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rosa-mystica-tuntang/web/internal/database"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rs/zerolog"
)

// setupDB connects to TEST_DATABASE_URL, applies the migrations and empties
// every table. Tests are skipped when the variable is unset.
func setupDB(t *testing.T) *repository.Repositories {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	db := database.Wrap(conn, zerolog.Nop())
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if _, err := db.Exec("TRUNCATE comments, donations, contents"); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return repository.New(db)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func newArticle(title string, published bool, createdAt time.Time) *models.Content {
	return &models.Content{
		ID:        uuid.New().String(),
		Title:     title,
		Type:      models.ContentTypeArticle,
		Body:      strPtr("Isi artikel"),
		Published: published,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestContentRepo(t *testing.T) {
	repos := setupDB(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)

	older := newArticle("Lama", true, base)
	newer := newArticle("Baru", false, base.Add(time.Minute))
	size := int64(4096)
	image := &models.Content{
		ID: uuid.New().String(), Title: "Gua", Type: models.ContentTypeImage,
		Filename: strPtr("1_gua.png"), Path: strPtr("/uploads/1_gua.png"), Size: &size,
		MimeType: strPtr("image/png"), Published: true, CreatedAt: base.Add(2 * time.Minute), UpdatedAt: base,
	}
	for _, c := range []*models.Content{older, newer, image} {
		if err := repos.Content.Create(ctx, c); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := repos.Content.List(ctx, models.ContentFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != image.ID || all[2].ID != older.ID {
		t.Errorf("Expected newest first, got %d rows", len(all))
	}

	published, err := repos.Content.List(ctx, models.ContentFilter{Type: models.ContentTypeArticle, PublishedOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(published) != 1 || published[0].ID != older.ID {
		t.Errorf("Expected only the published article, got %d rows", len(published))
	}

	updated, err := repos.Content.Update(ctx, newer.ID, models.ContentPatch{Title: strPtr("Baru sekali"), Published: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated == nil || updated.Title != "Baru sekali" || !updated.Published || *updated.Body != "Isi artikel" {
		t.Errorf("Unexpected updated row: %+v", updated)
	}

	missing, err := repos.Content.Update(ctx, uuid.New().String(), models.ContentPatch{Title: strPtr("x")})
	if err != nil || missing != nil {
		t.Errorf("Expected (nil, nil) for a missing row, got (%v, %v)", missing, err)
	}

	stats, err := repos.Content.ImageStorageStats(ctx)
	if err != nil {
		t.Fatalf("ImageStorageStats failed: %v", err)
	}
	if stats.TotalImages != 1 || stats.TotalSizeBytes != size {
		t.Errorf("Unexpected storage stats: %+v", stats)
	}

	counts, err := repos.Content.CountStats(ctx)
	if err != nil {
		t.Fatalf("CountStats failed: %v", err)
	}
	if counts.Articles != 2 || counts.Images != 1 || counts.Published != 3 {
		t.Errorf("Unexpected counts: %+v", counts)
	}

	deleted, err := repos.Content.Delete(ctx, older.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, err := repos.Content.GetByID(ctx, older.ID); err != nil || got != nil {
		t.Errorf("Expected deleted row to be gone, got (%v, %v)", got, err)
	}
	if deleted, _ := repos.Content.Delete(ctx, older.ID); deleted {
		t.Error("Deleting twice should report no row")
	}
}

func TestDonationRepo(t *testing.T) {
	repos := setupDB(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).UTC()

	var ids []string
	for i := 0; i < 12; i++ {
		d := &models.Donation{
			ID: uuid.New().String(), Name: "Donatur", City: "Ambarawa", Amount: int64(10000 * (i + 1)),
			ProofImagePath: "/uploads/donations/donation_1.png", Status: models.DonationStatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute), UpdatedAt: base,
		}
		if err := repos.Donation.Create(ctx, d); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, d.ID)
	}

	page, total, err := repos.Donation.List(ctx, models.DonationFilter{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 12 || len(page) != 2 {
		t.Errorf("Expected 2 rows of 12 on page 2, got %d of %d", len(page), total)
	}
	if page[len(page)-1].ID != ids[0] {
		t.Error("Expected the oldest donation last")
	}

	verified, err := repos.Donation.UpdateStatus(ctx, ids[0], models.DonationStatusPending, models.DonationStatusVerified)
	if err != nil || verified == nil || verified.Status != models.DonationStatusVerified {
		t.Fatalf("UpdateStatus failed: (%v, %v)", verified, err)
	}
	again, err := repos.Donation.UpdateStatus(ctx, ids[0], models.DonationStatusPending, models.DonationStatusRejected)
	if err != nil || again != nil {
		t.Errorf("A settled donation must not change, got (%v, %v)", again, err)
	}

	pending, err := repos.Donation.CountByStatus(ctx, models.DonationStatusPending)
	if err != nil || pending != 11 {
		t.Errorf("Expected 11 pending, got %d (%v)", pending, err)
	}
	_, total, err = repos.Donation.List(ctx, models.DonationFilter{Status: models.DonationStatusVerified, Page: 1, Limit: 10})
	if err != nil || total != 1 {
		t.Errorf("Expected 1 verified donation, got %d (%v)", total, err)
	}
}

func TestCommentRepo(t *testing.T) {
	repos := setupDB(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).UTC()

	article := newArticle("Ziarah", true, base)
	if err := repos.Content.Create(ctx, article); err != nil {
		t.Fatalf("Create content failed: %v", err)
	}

	first := &models.Comment{ID: uuid.New().String(), ContentID: article.ID, Name: "Agnes", Message: "Pertama", CreatedAt: base, UpdatedAt: base}
	second := &models.Comment{ID: uuid.New().String(), ContentID: article.ID, Name: "Budi", Email: strPtr("budi@example.com"), Message: "Kedua", CreatedAt: base.Add(time.Minute), UpdatedAt: base}
	for _, c := range []*models.Comment{first, second} {
		if err := repos.Comment.Create(ctx, c); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	orphan := &models.Comment{ID: uuid.New().String(), ContentID: uuid.New().String(), Name: "X", Message: "Yatim", CreatedAt: base, UpdatedAt: base}
	if err := repos.Comment.Create(ctx, orphan); !errors.Is(err, repository.ErrContentMissing) {
		t.Errorf("Expected ErrContentMissing, got %v", err)
	}

	if ok, err := repos.Comment.SetApproved(ctx, second.ID, true); err != nil || !ok {
		t.Fatalf("SetApproved failed: %v", err)
	}
	if ok, err := repos.Comment.Reply(ctx, first.ID, "Terima kasih", time.Now()); err != nil || !ok {
		t.Fatalf("Reply failed: %v", err)
	}

	approved, err := repos.Comment.ListApproved(ctx, article.ID)
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(approved) != 2 || approved[0].ID != first.ID || approved[0].AdminReply == nil || approved[0].RepliedAt == nil {
		t.Errorf("Expected both comments oldest first with the reply stamped, got %d", len(approved))
	}

	admin, err := repos.Comment.ListForAdmin(ctx, "")
	if err != nil {
		t.Fatalf("ListForAdmin failed: %v", err)
	}
	if len(admin) != 2 || admin[0].ID != second.ID || admin[0].Content.Title != "Ziarah" {
		t.Errorf("Expected newest first with article title, got %+v", admin)
	}

	if ok, err := repos.Comment.Delete(ctx, first.ID); err != nil || !ok {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok, _ := repos.Comment.SetApproved(ctx, first.ID, false); ok {
		t.Error("Expected no row for a deleted comment")
	}

	// Deleting the article cascades to its comments
	if _, err := repos.Content.Delete(ctx, article.ID); err != nil {
		t.Fatalf("Delete content failed: %v", err)
	}
	if c, err := repos.Comment.GetByID(ctx, second.ID); err != nil || c != nil {
		t.Errorf("Expected cascaded delete, got (%v, %v)", c, err)
	}
}
