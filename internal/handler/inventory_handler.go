package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// StatsObserver receives every computed inventory summary.
type StatsObserver interface {
	ObserveStats(stats service.Stats)
}

// InventoryHandler serves the dashboard computations.
type InventoryHandler struct {
	svc      service.InventoryService
	observer StatsObserver
}

// NewInventoryHandler creates a new inventory handler. observer may be nil.
func NewInventoryHandler(svc service.InventoryService, observer StatsObserver) *InventoryHandler {
	return &InventoryHandler{svc: svc, observer: observer}
}

// Stats godoc
// @Summary Inventory summary
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=service.Stats}
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /inventory/stats [get]
func (h *InventoryHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	if h.observer != nil {
		h.observer.ObserveStats(stats)
	}
	return ok(c, http.StatusOK, stats)
}

// Chart godoc
// @Summary Quantity versus minimum per product
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=[]service.ChartPoint}
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /inventory/chart [get]
func (h *InventoryHandler) Chart(c echo.Context) error {
	points, err := h.svc.Chart(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, points)
}

// Attention godoc
// @Summary Products that are low or out of stock
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=[]service.ProductStatus}
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /inventory/attention [get]
func (h *InventoryHandler) Attention(c echo.Context) error {
	items, err := h.svc.Attention(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, items)
}
