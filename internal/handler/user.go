package handler

import (
	"net/http"

	"sportify-api/internal/dto"
	"sportify-api/internal/middleware"
	"sportify-api/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetAccount(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userService.GetAccount(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AccountResponse{
		ID:       user.ID,
		Email:    user.Email,
		Verified: user.Verified,
	})
}
