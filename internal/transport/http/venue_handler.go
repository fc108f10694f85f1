package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/service"
	"github.com/kidspots/kidspots-api/internal/util"
)

type VenueHandler struct {
	venues *service.VenueService
	marks  *service.MarkService
}

type venueSearchRequest struct {
	Bounds     domain.BoundingBox `json:"bounds"`
	VenueTypes []string           `json:"venueTypes"`
}

func RegisterVenues(e *echo.Echo, auth *service.AuthService, venues *service.VenueService, marks *service.MarkService) {
	handler := &VenueHandler{venues: venues, marks: marks}

	e.POST("/api/venues/search", handler.searchVenues)
	e.GET("/api/venue/:venueId/status", handler.venueStatus, RequireAuth(auth))
}

func (h *VenueHandler) searchVenues(c echo.Context) error {
	var req venueSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.VenueTypes == nil {
		return c.JSON(http.StatusBadRequest, util.Error("venueTypes is required"))
	}
	if err := req.Bounds.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	types, err := parseVenueTypes(req.VenueTypes)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	venues, err := h.venues.Search(c.Request().Context(), req.Bounds, types)
	if err != nil {
		c.Logger().Errorf("venue search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to search venues"))
	}
	return c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) venueStatus(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	venueID := strings.TrimSpace(c.Param("venueId"))
	if venueID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("venueId is required"))
	}

	status, err := h.marks.Status(c.Request().Context(), user.ID, venueID)
	if err != nil {
		c.Logger().Errorf("venue status check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to check venue status"))
	}
	return c.JSON(http.StatusOK, status)
}

func parseVenueTypes(raw []string) ([]domain.VenueType, error) {
	types := make([]domain.VenueType, 0, len(raw))
	for _, s := range raw {
		t, err := domain.ParseVenueType(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// parseVenueTypesQuery reads an optional comma-separated ?types= filter.
func parseVenueTypesQuery(c echo.Context) ([]domain.VenueType, error) {
	raw := strings.TrimSpace(c.QueryParam("types"))
	if raw == "" {
		return nil, nil
	}
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parseVenueTypes(parts)
}
