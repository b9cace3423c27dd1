package handler

import (
	"net/http"

	"sportify-api/internal/dto"
	"sportify-api/internal/middleware"
	"sportify-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	lines, err := h.cartService.GetCart(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) AddLine(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartLineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	line, err := h.cartService.AddLine(ctx, middleware.UserID(c), service.AddCartLineInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.AddCartLineResponse{ID: line.ID})
}

func (h *CartHandler) UpdateLine(c echo.Context) error {
	ctx := c.Request().Context()

	lineID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCartLineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.cartService.UpdateQuantity(ctx, middleware.UserID(c), lineID, req.Quantity); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Updated"})
}

func (h *CartHandler) RemoveLine(c echo.Context) error {
	ctx := c.Request().Context()

	lineID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.cartService.RemoveLine(ctx, middleware.UserID(c), lineID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Removed from cart"})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.ClearCart(ctx, middleware.UserID(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Cart cleared"})
}
