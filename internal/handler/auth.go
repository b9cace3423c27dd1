package handler

import (
	"net/http"

	"sportify-api/internal/dto"
	"sportify-api/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.Register(ctx, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{
		Message: "User registered, check email for verification",
	})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}

	if err := h.authService.ConfirmVerification(ctx, token); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Email verified successfully",
	})
}

func (h *AuthHandler) ResendVerification(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ResendVerification(ctx, req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, dto.MessageResponse{
		Message: "If the account exists and is unverified, a new verification email has been sent",
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
