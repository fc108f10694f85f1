package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kidspots/kidspots-api/internal/service"
	"github.com/kidspots/kidspots-api/internal/util"
)

type LocationHandler struct {
	locations *service.LocationService
}

func RegisterLocations(e *echo.Echo, locations *service.LocationService) {
	handler := &LocationHandler{locations: locations}
	e.POST("/api/locations/search", handler.searchLocations)
}

func (h *LocationHandler) searchLocations(c echo.Context) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	locations, err := h.locations.Search(c.Request().Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.JSON(http.StatusBadRequest, util.Error("query is required"))
		}
		c.Logger().Errorf("location search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to search locations"))
	}
	return c.JSON(http.StatusOK, locations)
}
