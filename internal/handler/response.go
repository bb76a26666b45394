package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func failure(resp apperrors.ErrorResponse) Envelope {
	return Envelope{Success: false, Error: resp.Error, Code: resp.Code}
}

// Fail renders an error envelope directly. Used by middleware that answers
// outside the echo handler chain.
func Fail(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failure(apperrors.NewHTTPError(status, message, code).ToErrorResponse()))
}

// ErrorHandler converts any handler error into an error envelope and logs it.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err)
		attrs := []any{
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", httpErr.StatusCode),
			slog.String("code", httpErr.Code),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			slog.Any("error", err),
		}
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request rejected", attrs...)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(httpErr.StatusCode)
		} else {
			werr = c.JSON(httpErr.StatusCode, failure(httpErr.ToErrorResponse()))
		}
		if werr != nil {
			logger.Error("write error response", slog.Any("error", werr))
		}
	}
}

// toHTTPError prefers the domain classification and falls back to echo's own
// errors (unknown route, method not allowed, bad body).
func toHTTPError(err error) *apperrors.HTTPError {
	mapped := apperrors.MapErrorToHTTP(err)
	if mapped.Code != "INTERNAL_ERROR" {
		return mapped
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, isString := he.Message.(string); isString && s != "" {
			msg = s
		}
		return apperrors.NewHTTPError(he.Code, msg, statusCode(he.Code))
	}
	return mapped
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= http.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "REQUEST_ERROR"
}

// bindAndValidate decodes the request body into v and runs the registered
// validator. Both failures match ErrValidation.
func bindAndValidate(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return apperrors.Validationf("invalid request body: %v", he.Message)
		}
		return apperrors.Validationf("invalid request body: %v", err)
	}
	return c.Validate(v)
}
