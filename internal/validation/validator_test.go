package validation

import (
	"testing"

	"github.com/rosa-mystica-tuntang/web/internal/models"
)

func strPtr(s string) *string { return &s }

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name      string
		input     models.CommentInput
		wantField string
	}{
		{
			name:  "valid comment",
			input: models.CommentInput{ContentID: "c1", Name: "Budi", Message: "Terima kasih"},
		},
		{
			name:  "valid with email",
			input: models.CommentInput{ContentID: "c1", Name: "Budi", Email: "budi@example.com", Message: "Berkah dalem"},
		},
		{
			name:      "one character name",
			input:     models.CommentInput{ContentID: "c1", Name: "B", Message: "Terima kasih"},
			wantField: "name",
		},
		{
			name:      "name padded with spaces",
			input:     models.CommentInput{ContentID: "c1", Name: "  B  ", Message: "Terima kasih"},
			wantField: "name",
		},
		{
			name:      "short message",
			input:     models.CommentInput{ContentID: "c1", Name: "Budi", Message: "hai"},
			wantField: "message",
		},
		{
			name:      "missing content id",
			input:     models.CommentInput{Name: "Budi", Message: "Terima kasih"},
			wantField: "contentId",
		},
		{
			name:      "invalid email",
			input:     models.CommentInput{ContentID: "c1", Name: "Budi", Email: "not-an-email", Message: "Terima kasih"},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			err := ValidateComment(&in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Expected *ValidationError, got %T (%v)", err, err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q (%s)", tt.wantField, ve.Field, ve.Message)
			}
		})
	}
}

func TestValidateComment_Trims(t *testing.T) {
	in := models.CommentInput{ContentID: " c1 ", Name: "  Budi ", Email: " ", Message: "  Terima kasih  "}
	if err := ValidateComment(&in); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if in.Name != "Budi" || in.Message != "Terima kasih" || in.Email != "" || in.ContentID != "c1" {
		t.Errorf("Expected trimmed input, got %+v", in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"250000", 250000, false},
		{"Rp 1.500.000", 1500000, false},
		{"rp100.000", 100000, false},
		{" 50 000 ", 50000, false},
		{"0", 0, true},
		{"-10", 0, true},
		{"seratus", 0, true},
		{"Rp", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q): expected error, got %d", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestValidateDonation(t *testing.T) {
	in := models.DonationInput{Name: " Maria ", City: "Salatiga", Amount: "Rp 100.000"}
	amount, err := ValidateDonation(&in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if amount != 100000 || in.Name != "Maria" {
		t.Errorf("Unexpected result amount=%d name=%q", amount, in.Name)
	}

	missing := models.DonationInput{Name: "Maria", Amount: "100"}
	if _, err := ValidateDonation(&missing); !IsValidationError(err) {
		t.Errorf("Expected validation error for missing city, got %v", err)
	}
}

func TestParseDonationStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "VERIFIED", "REJECTED"} {
		if _, err := ParseDonationStatus(raw); err != nil {
			t.Errorf("ParseDonationStatus(%q): unexpected error %v", raw, err)
		}
	}
	for _, raw := range []string{"", "APPROVED", "DONE", "verified", " REJECTED ", "Pending"} {
		if _, err := ParseDonationStatus(raw); !IsValidationError(err) {
			t.Errorf("ParseDonationStatus(%q): expected validation error", raw)
		}
	}
}

func TestParseContentType(t *testing.T) {
	if got, err := ParseContentType(""); err != nil || got != "" {
		t.Errorf("Expected empty filter, got %q, %v", got, err)
	}
	if got, _ := ParseContentType("article"); got != models.ContentTypeArticle {
		t.Errorf("Expected ARTICLE, got %q", got)
	}
	if _, err := ParseContentType("VIDEO"); !IsValidationError(err) {
		t.Error("Expected validation error for VIDEO")
	}
}

func TestValidateArticle(t *testing.T) {
	if err := ValidateArticle(&models.ArticleInput{}); !IsValidationError(err) {
		t.Error("Expected error for missing title")
	}
	if err := ValidateArticle(&models.ArticleInput{Title: strPtr("   ")}); !IsValidationError(err) {
		t.Error("Expected error for blank title")
	}

	in := &models.ArticleInput{Title: strPtr("  Misa Minggu  ")}
	if err := ValidateArticle(in); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if *in.Title != "Misa Minggu" {
		t.Errorf("Expected trimmed title, got %q", *in.Title)
	}

	if err := ValidateArticlePatch(&models.ArticleInput{}); err != nil {
		t.Errorf("Empty patch should be valid, got %v", err)
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID("7c9e6679-7425-40de-944b-e07fc1f90ae7") {
		t.Error("Expected UUID to be valid")
	}
	if IsValidID("not-a-uuid") {
		t.Error("Expected garbage to be invalid")
	}
}
