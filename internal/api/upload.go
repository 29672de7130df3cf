package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
)

// multipartOverhead is the room left for form fields and boundaries on top
// of a route's file size cap
const multipartOverhead = 1 << 20

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// limitBody caps the request body so an oversized upload fails while it is
// still being read
func limitBody(maxFileSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFileSize+multipartOverhead)
		c.Next()
	}
}

// readUpload loads a multipart file field into memory. A missing field
// yields (nil, nil). At most maxBytes+1 bytes are read so the service can
// tell an oversized file from one exactly at the cap.
func readUpload(c *gin.Context, field string, maxBytes int64) (*service.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, formError(err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// bindForm binds a browser form into obj. Field problems are left to the
// service validators; only a body over the route's cap is reported.
func bindForm(c *gin.Context, obj interface{}) error {
	err := c.ShouldBind(obj)
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return formError(err)
	}
	return nil
}

// formError turns a multipart parse failure into a client error
func formError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return fmt.Errorf("%w: request body exceeds %d bytes", service.ErrFileTooLarge, tooBig.Limit)
	}
	return validation.New("file", "Invalid multipart form")
}
