package handler

import (
	"net/http"

	"sportify-api/internal/dto"
	"sportify-api/internal/middleware"
	"sportify-api/internal/model"
	"sportify-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
}

func NewOrderHandler(checkoutService service.CheckoutService, orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	shipping := model.ShippingInfo{
		Email:    req.Email,
		Name:     req.Name,
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		State:    req.State,
		Pin:      req.Pin,
		Phone:    req.Phone,
	}

	order, err := h.checkoutService.Checkout(ctx, middleware.UserID(c), shipping, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CheckoutResponse{
		Message: "Checkout successful",
		OrderID: order.ID,
	})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListOrders(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrderItems(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.orderService.GetOrderLines(ctx, middleware.UserID(c), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}
