package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kidspots/kidspots-api/internal/media"
	"github.com/kidspots/kidspots-api/internal/service"
	"github.com/kidspots/kidspots-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	e.POST("/api/auth/signup", handler.signup)
	e.POST("/api/auth/login", handler.login)
	e.POST("/api/auth/google", handler.loginGoogle)

	protected := e.Group("/api/auth", RequireAuth(auth))
	protected.GET("/user", handler.currentUser)
	protected.POST("/logout", handler.logout)
	protected.PUT("/profile", handler.updateProfile)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, token, err := h.auth.SignupEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, util.Error("email already registered"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"user": user, "token": token})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, token, err := h.auth.LoginEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error("invalid email or password"))
		}
		c.Logger().Errorf("login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("login failed"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": user, "token": token})
}

func (h *AuthHandler) loginGoogle(c echo.Context) error {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.IDToken) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("idToken is required"))
	}

	user, token, err := h.auth.LoginGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error("invalid google token"))
		}
		c.Logger().Errorf("google login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("login failed"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": user, "token": token})
}

func (h *AuthHandler) currentUser(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), currentToken(c)); err != nil {
		c.Logger().Errorf("logout failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("logout failed"))
	}
	return c.JSON(http.StatusOK, util.Success())
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	firstName := optionalFormValue(c, "firstName")
	lastName := optionalFormValue(c, "lastName")

	var upload *media.Upload
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("unable to read image"))
		}
		defer src.Close()
		upload = &media.Upload{
			Reader:      src,
			Size:        file.Size,
			FileName:    file.Filename,
			ContentType: file.Header.Get(echo.HeaderContentType),
		}
	}

	updated, err := h.auth.UpdateProfile(c.Request().Context(), user.ID, firstName, lastName, upload)
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, util.Error("image uploads are disabled"))
		}
		c.Logger().Errorf("profile update failed: %v", err)
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, updated)
}

func optionalFormValue(c echo.Context, name string) *string {
	value := strings.TrimSpace(c.FormValue(name))
	if value == "" {
		return nil
	}
	return &value
}
