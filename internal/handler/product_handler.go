package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ListProducts godoc
// @Summary List products
// @Description Returns every product. q filters by name, SKU or category, ignoring case.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term"
// @Success 200 {object} Envelope{data=[]model.Product}
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.svc.ListProducts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, products)
}

// CreateProduct godoc
// @Summary Create product
// @Description Any id in the body is ignored; the server assigns one.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body model.Product true "Product payload"
// @Success 201 {object} Envelope{data=model.Product}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var product model.Product
	if err := bindAndValidate(c, &product); err != nil {
		return err
	}
	created, err := h.svc.CreateProduct(c.Request().Context(), product)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, created)
}

// UpdateProduct godoc
// @Summary Replace product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body model.Product true "Full product"
// @Success 200 {object} Envelope{data=model.Product}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")
	var product model.Product
	if err := bindAndValidate(c, &product); err != nil {
		return err
	}
	if err := checkPathID(id, product.ID); err != nil {
		return err
	}
	product.ID = id
	updated, err := h.svc.UpdateProduct(c.Request().Context(), product)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, updated)
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Deleting an unknown id succeeds.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.svc.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, http.StatusOK, nil)
}

// checkPathID rejects a body id that disagrees with the path.
func checkPathID(pathID, bodyID string) error {
	if pathID == "" {
		return apperrors.Validationf("id is required")
	}
	if bodyID != "" && bodyID != pathID {
		return apperrors.Validationf("body id %q does not match path id %q", bodyID, pathID)
	}
	return nil
}
