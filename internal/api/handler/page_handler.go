package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/api/middleware"
)

type pageResponse struct {
	Page string `json:"page"`
}

// Placeholder answers gated page requests when no frontend is configured, so
// the gate can be exercised on its own.
func Placeholder(c echo.Context) error {
	page := c.Request().Header.Get(middleware.HeaderPathname)
	if page == "" {
		page = c.Request().URL.Path
	}
	return c.JSON(http.StatusOK, pageResponse{Page: page})
}
