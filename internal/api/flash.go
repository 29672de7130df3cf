package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// redirectWithFlash sends the browser back to target with a one-line
// message in the query string. key is "ok" or "err".
func redirectWithFlash(c *gin.Context, target, key, message string) {
	path, fragment, _ := strings.Cut(target, "#")
	u, err := url.Parse(path)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Del("ok")
	q.Del("err")
	q.Set(key, message)
	u.RawQuery = q.Encode()
	u.Fragment = fragment
	c.Redirect(http.StatusSeeOther, u.String())
}

// redirectWithError flashes the client-facing message for err. Unexpected
// errors are logged and replaced by a generic message.
func redirectWithError(c *gin.Context, target string, err error, log zerolog.Logger) {
	status, body := classifyError(err, "Data tidak ditemukan")
	message, _ := body["error"].(string)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Form submission failed")
		message = "Terjadi kesalahan, silakan coba lagi nanti."
	}
	redirectWithFlash(c, target, "err", message)
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
