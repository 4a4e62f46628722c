package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"mixtape.GO/service/cart"
	"mixtape.GO/service/catalog"
	"mixtape.GO/service/checkout"
)

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, catalog.ErrVariantNotFound):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, cart.ErrNotLoaded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error writes err as {"error": ...} with the mapped status.
func Error(c echo.Context, err error) error {
	return c.JSON(StatusFor(err), echo.Map{"error": err.Error()})
}
