// Package web holds the HTML templates and static assets of the site and the
// helpers the templates call.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/rosa-mystica-tuntang/web/internal/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Templates parses every page template with the site's FuncMap
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Static returns the stylesheet and script assets rooted at "static"
func Static() fs.FS {
	root, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return root
}

// FuncMap returns the helpers available to templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown":   Markdown,
		"date":       FormatDate,
		"datetime":   FormatDateTime,
		"rupiah":     FormatRupiah,
		"deref":      Deref,
		"preview":    markdown.Preview,
		"firstImage": firstImage,
		"add":        add,
		"sub":        sub,
	}
}

// Markdown renders an article body. Output that fails to render falls back
// to the escaped source.
func Markdown(src *string) template.HTML {
	html, err := markdown.Render(Deref(src))
	if err != nil {
		return template.HTML(template.HTMLEscapeString(Deref(src)))
	}
	return html
}

// FormatDate renders a date as "14 Oktober 2026"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatDateTime renders a date with its time of day
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %02d:%02d", FormatDate(t), t.Hour(), t.Minute())
}

// FormatRupiah renders an amount as "Rp 1.500.000"
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

func firstImage(s *string) string { return markdown.FirstImage(Deref(s)) }
func add(a, b int) int { return a + b }
func sub(a, b int) int { return a - b }

// Deref returns the pointed-to string or ""
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
