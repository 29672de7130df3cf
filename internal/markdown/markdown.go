// Package markdown renders article bodies and derives plain-text previews.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// PreviewLength is the excerpt length used when an article has none
const PreviewLength = 300

var (
	imageRe      = regexp.MustCompile(`!\[[^\]]*?\]\([^)]*?\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe    = regexp.MustCompile(`#{1,6}\s`)
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.*?)\*`)
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	quoteRe      = regexp.MustCompile(`>\s`)
	newlinesRe   = regexp.MustCompile(`\n+`)
	firstImageRe = regexp.MustCompile(`!\[[^\]]*?\]\(([^)]*?)\)`)
)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Preview strips markdown syntax and truncates to maxLength runes,
// appending "..." when text was cut
func Preview(src string, maxLength int) string {
	if src == "" {
		return ""
	}
	s := imageRe.ReplaceAllString(src, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = codeBlockRe.ReplaceAllString(s, "")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = quoteRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(newlinesRe.ReplaceAllString(s, " "))

	if utf8.RuneCountInString(s) > maxLength {
		s = string([]rune(s)[:maxLength]) + "..."
	}
	return s
}

// FirstImage returns the target of the first markdown image, if any
func FirstImage(src string) string {
	m := firstImageRe.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return m[1]
}

// Render converts markdown to HTML. Raw HTML in the source is not passed
// through, so the output is safe to embed in a page.
func Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
