package middleware

import (
	"log/slog"
	"net/http"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/labstack/echo/v4"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := dto.ErrorResponse{Message: err.Error()}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			body.Message = m
		case dto.ErrorResponse:
			body = m
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
	}

	_ = c.JSON(code, body)
}
