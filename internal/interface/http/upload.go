package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/auction-marketplace/internal/application"
)

const maxUploadBytes = 5 << 20

// formImage opens the named multipart file. A missing file yields a nil
// Upload so the service reports which image is required.
func formImage(c *gin.Context, field string) (*application.Upload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nopCloser{}, nil
		}
		return nil, nopCloser{}, err
	}
	if fh.Size > maxUploadBytes {
		return nil, nopCloser{}, errors.New("file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nopCloser{}, err
	}
	ct := fh.Header.Get("Content-Type")
	return &application.Upload{Reader: f, Filename: fh.Filename, ContentType: ct}, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
