package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with all routes registered.
func NewServer(handler *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())

	registerRoutes(e, handler)
	return e
}

func registerRoutes(e *echo.Echo, h *Handler) {
	apiGroup := e.Group("/api")
	apiGroup.GET("/health", h.HandleHealth)
	apiGroup.GET("/specs", h.HandleListSpecs)
	apiGroup.GET("/specs/:documentID", h.HandleSpecDetails)

	// Short link used in documents: /spec/ABC123 -> the document.
	e.GET("/spec/:index", h.HandleSpecRedirect)
}
