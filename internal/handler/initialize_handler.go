package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// InitializeHandler handles the seed endpoint.
type InitializeHandler struct {
	initializer service.Initializer
}

// NewInitializeHandler creates a new initialize handler.
func NewInitializeHandler(initializer service.Initializer) *InitializeHandler {
	return &InitializeHandler{initializer: initializer}
}

// Initialize godoc
// @Summary Seed empty collections
// @Description Writes the baseline products and users into empty collections. Safe to repeat.
// @Tags initialize
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=service.InitResult}
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /initialize [post]
func (h *InitializeHandler) Initialize(c echo.Context) error {
	result, err := h.initializer.Initialize(c.Request().Context())
	if err != nil {
		return err
	}

	message := "data already initialized"
	if result.ProductsSeeded > 0 || result.UsersSeeded > 0 {
		message = "data initialized successfully"
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: result, Message: message})
}
