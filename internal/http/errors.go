package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgInternal   = "Erro interno do servidor"
	msgNotFound   = "Rota não encontrada"
	msgBadInput   = "Requisição inválida"
	msgTooLarge   = "Requisição muito grande"
	msgNotAllowed = "Método não permitido"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// errorHandler is the catch-all responder: the status comes from *echo.HTTPError, anything else is 500.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			switch code {
			case http.StatusNotFound:
				msg = msgNotFound
			case http.StatusMethodNotAllowed:
				msg = msgNotAllowed
			case http.StatusRequestEntityTooLarge:
				msg = msgTooLarge
			default:
				if s, ok := he.Message.(string); ok {
					msg = s
				}
			}
		}
		if msg == "" {
			msg = msgInternal
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, ErrorResponse{Message: msg})
		}
		if werr != nil {
			log.Error("write error response", zap.Error(werr))
		}
	}
}
