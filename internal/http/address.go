package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jmehdipour/lead-gateway/internal/address"
)

func lookupAddressHandler(lookup AddressLookup) echo.HandlerFunc {
	return func(c echo.Context) error {
		addr, err := lookup.Lookup(c.Request().Context(), c.Param("cep"))
		switch {
		case errors.Is(err, address.ErrInvalidCEP):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "CEP inválido"})
		case errors.Is(err, address.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Message: "CEP não encontrado"})
		case err != nil:
			c.Logger().Errorf("cep lookup failed: %v", err)
			return c.JSON(http.StatusBadGateway, ErrorResponse{Message: "Erro ao buscar CEP"})
		}

		return c.JSON(http.StatusOK, addr)
	}
}
