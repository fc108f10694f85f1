package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/service"
	"github.com/kidspots/kidspots-api/internal/util"
)

type VisitedHandler struct {
	marks *service.MarkService
}

func RegisterVisited(e *echo.Echo, auth *service.AuthService, marks *service.MarkService) {
	handler := &VisitedHandler{marks: marks}

	group := e.Group("/api/visited", RequireAuth(auth))
	group.GET("", handler.listVisited)
	group.POST("", handler.addVisited)
	group.DELETE("/:venueId", handler.removeVisited)
}

func (h *VisitedHandler) listVisited(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	types, err := parseVenueTypesQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	marks, err := h.marks.ListVisited(c.Request().Context(), user.ID, types)
	if err != nil {
		c.Logger().Errorf("list visited failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to fetch visited places"))
	}

	items := make([]visitedResponse, 0, len(marks))
	for _, mark := range marks {
		items = append(items, toVisitedResponse(mark))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *VisitedHandler) addVisited(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var snapshot domain.VenueSnapshot
	if err := c.Bind(&snapshot); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	mark, err := h.marks.AddVisited(c.Request().Context(), user.ID, snapshot)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVenue) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		c.Logger().Errorf("add visited failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to add visited place"))
	}
	return c.JSON(http.StatusOK, toVisitedResponse(*mark))
}

func (h *VisitedHandler) removeVisited(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	venueID := strings.TrimSpace(c.Param("venueId"))
	if venueID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("venueId is required"))
	}

	if err := h.marks.RemoveVisited(c.Request().Context(), user.ID, venueID); err != nil {
		c.Logger().Errorf("remove visited failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to remove visited place"))
	}
	return c.JSON(http.StatusOK, util.Success())
}
