// Package api serves spec metadata to the web front end over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driving"
	"github.com/custodia-labs/specsync/internal/logger"
)

// Handler exposes the SpecDirectory over HTTP.
type Handler struct {
	directory driving.SpecDirectory
}

// NewHandler creates the API handler.
func NewHandler(directory driving.SpecDirectory) *Handler {
	return &Handler{directory: directory}
}

// specsResponse is the /api/specs payload.
type specsResponse struct {
	Specs []domain.SpecRecord `json:"specs"`
	Teams []string            `json:"teams"`
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HandleListSpecs returns all tracked records plus the team list.
func (h *Handler) HandleListSpecs(c echo.Context) error {
	ctx := c.Request().Context()

	specs, err := h.directory.AllSpecs(ctx)
	if err != nil {
		logger.Error("list specs: %v", err)
		return NewInternalError("Error fetching specs, try again.")
	}
	teams, err := h.directory.Teams(ctx)
	if err != nil {
		logger.Error("list teams: %v", err)
		return NewInternalError("Error fetching specs, try again.")
	}
	return c.JSON(http.StatusOK, specsResponse{Specs: specs, Teams: teams})
}

// HandleSpecDetails fetches one document on demand.
// Extraction failure surfaces as a generic retryable error, never as
// internal detail.
func (h *Handler) HandleSpecDetails(c echo.Context) error {
	documentID := c.Param("documentID")

	details, err := h.directory.SpecDetails(c.Request().Context(), documentID)
	if err != nil {
		logger.Error("spec details %s: %v", documentID, err)
		return NewInternalError("Error fetching document, try again.")
	}
	return c.JSON(http.StatusOK, details)
}

// HandleSpecRedirect redirects a spec index to its document URL.
func (h *Handler) HandleSpecRedirect(c echo.Context) error {
	index := c.Param("index")

	rec, err := h.directory.SpecByIndex(c.Request().Context(), index)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError("spec", index)
		}
		logger.Error("spec redirect %s: %v", index, err)
		return NewInternalError("Error fetching specs, try again.")
	}
	return c.Redirect(http.StatusFound, rec.FileURL)
}
