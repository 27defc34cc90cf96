package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedwire/feed-service/internal/core/ports"
)

// formUpload extracts the named multipart file, if any. A request without the
// field is valid and yields a nil upload. The file handle stays open for the
// duration of the request; echo cleans up the multipart form afterwards.
func formUpload(c echo.Context, field string) (*ports.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}

	return &ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}, nil
}
