package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yedidi/warehouse-api/internal/api/metrics"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type permissionRequest struct {
	Username   string `json:"username"`
	Permission string `json:"permission"`
}

// Signup creates a Worker account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse  "username already taken"
// @Router       /api/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	_, err := h.authService.Signup(c.Request().Context(), ports.Credentials{Username: req.Username, Password: req.Password})
	metrics.AuthAttemptsTotal.WithLabelValues("signup", metrics.KindLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusCreated)
}

// Login authenticates a user and returns a bearer token valid for 24 hours.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), ports.Credentials{Username: req.Username, Password: req.Password})
	metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.KindLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// UpdatePermission sets another user's permission to M or W. Admin only.
//
// @Summary      Update a user's permission
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      permissionRequest  true  "Target username and permission"
// @Success      200
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/permission [put]
func (h *AuthHandler) UpdatePermission(c echo.Context) error {
	var req permissionRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	if err := h.authService.UpdatePermission(c.Request().Context(), ports.PermissionUpdate{
		Username:   req.Username,
		Permission: req.Permission,
	}); err != nil {
		return err
	}

	metrics.PermissionChangesTotal.WithLabelValues(req.Permission).Inc()
	return c.NoContent(http.StatusOK)
}
