package storage

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DonationsDir holds proof-of-transfer images, relative to the uploads root
const DonationsDir = "donations"

// ThumbnailPrefix marks generated thumbnails next to their original
const ThumbnailPrefix = "thumb_"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SanitizeFilename folds accents and replaces anything outside
// [a-zA-Z0-9._-] so the name is safe as a single path segment
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))

	var b strings.Builder
	for _, r := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	safe := unsafeFilenameChars.ReplaceAllString(b.String(), "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		return "file"
	}
	return safe
}

// UploadKey names a content upload "<unix millis>_<sanitized name>"
func UploadKey(now time.Time, originalName string) string {
	return fmt.Sprintf("%d_%s", now.UnixMilli(), SanitizeFilename(originalName))
}

// DonationKey names a donation proof "donations/donation_<unix millis><ext>"
func DonationKey(now time.Time, originalName string) string {
	ext := strings.ToLower(path.Ext(SanitizeFilename(originalName)))
	return path.Join(DonationsDir, fmt.Sprintf("donation_%d%s", now.UnixMilli(), ext))
}

// ThumbnailKey names the thumbnail generated for an upload key
func ThumbnailKey(key string) string {
	dir, file := path.Split(key)
	return dir + ThumbnailPrefix + file
}
