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

type FavoriteHandler struct {
	marks *service.MarkService
}

func RegisterFavorites(e *echo.Echo, auth *service.AuthService, marks *service.MarkService) {
	handler := &FavoriteHandler{marks: marks}

	group := e.Group("/api/favorites", RequireAuth(auth))
	group.GET("", handler.listFavorites)
	group.POST("", handler.addFavorite)
	group.DELETE("/:venueId", handler.removeFavorite)
}

func (h *FavoriteHandler) listFavorites(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	types, err := parseVenueTypesQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	marks, err := h.marks.ListFavorites(c.Request().Context(), user.ID, types)
	if err != nil {
		c.Logger().Errorf("list favorites failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to fetch favorites"))
	}

	items := make([]favoriteResponse, 0, len(marks))
	for _, mark := range marks {
		items = append(items, toFavoriteResponse(mark))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *FavoriteHandler) addFavorite(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var snapshot domain.VenueSnapshot
	if err := c.Bind(&snapshot); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	mark, err := h.marks.AddFavorite(c.Request().Context(), user.ID, snapshot)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVenue) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		c.Logger().Errorf("add favorite failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to add favorite"))
	}
	return c.JSON(http.StatusOK, toFavoriteResponse(*mark))
}

func (h *FavoriteHandler) removeFavorite(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	venueID := strings.TrimSpace(c.Param("venueId"))
	if venueID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("venueId is required"))
	}

	if err := h.marks.RemoveFavorite(c.Request().Context(), user.ID, venueID); err != nil {
		c.Logger().Errorf("remove favorite failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("failed to remove favorite"))
	}
	return c.JSON(http.StatusOK, util.Success())
}
