package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

const (
	msgCreated = "Cadastro realizado com sucesso!"
	msgInvalid = "Dados inválidos"
)

type createdResponse struct {
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
}

type invalidResponse struct {
	Message string            `json:"message"`
	Errors  model.FieldErrors `json:"errors"`
}

func createLeadHandler(leads LeadSubmitter) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.Submission
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadInput})
		}

		res, err := leads.Submit(c.Request().Context(), req)
		if err != nil {
			var fieldErrs model.FieldErrors
			if errors.As(err, &fieldErrs) {
				return c.JSON(http.StatusBadRequest, invalidResponse{Message: msgInvalid, Errors: fieldErrs})
			}
			// config / provider failures go to the generic responder
			return err
		}

		return c.JSON(http.StatusCreated, createdResponse{
			Message: msgCreated,
			LeadID:  res.Dispatch.MessageID,
		})
	}
}
