package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/api/middleware"
	"github.com/fundbridge/platform/internal/core/ports"
)

// ctxUserID returns the caller set by the Auth middleware. An empty value
// means the route was mounted without Auth, which is rejected with 401.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bindAndValidate binds the request and runs the validator: 400 on a
// malformed payload, 422 on failed rules.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// formUpload opens the multipart file part named field. A missing part is
// nil unless required. The returned close func is never nil.
func formUpload(c echo.Context, field string, required bool) (*ports.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) && !required {
			return nil, noop, nil
		}
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, echo.NewHTTPError(http.StatusUnprocessableEntity, field+" is required")
		}
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}

	return &ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
