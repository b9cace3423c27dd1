package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"sportify-api/internal/dto"
	"sportify-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrInvalidPassword, http.StatusBadRequest},
	{service.ErrInvalidQuantity, http.StatusBadRequest},
	{service.ErrInvalidSize, http.StatusBadRequest},
	{service.ErrInvalidPaymentMethod, http.StatusBadRequest},
	{service.ErrInvalidShipping, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusBadRequest},
	{service.ErrInvalidToken, http.StatusBadRequest},
	{service.ErrCartEmpty, http.StatusBadRequest},
	{service.ErrEmailTaken, http.StatusConflict},
	{service.ErrProductUnavailable, http.StatusConflict},
	{service.ErrCartChanged, http.StatusConflict},
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrCartLineNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
}

// toHTTPError maps service errors onto status codes. Anything unrecognised is
// an internal error whose detail stays in the logs.
func toHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(verrs[0])).SetInternal(err)
	}

	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return echo.NewHTTPError(e.status, capitalize(e.err.Error())).SetInternal(err)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ErrorHandler renders every error as {"message": "..."}.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := toHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		message, ok := he.Message.(string)
		if !ok {
			message = http.StatusText(he.Code)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, dto.MessageResponse{Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
