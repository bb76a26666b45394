package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// UserHandler bundles user HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term over name, email, role and department"
// @Success 200 {object} Envelope{data=[]model.User}
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create user
// @Description status defaults to active and createdAt to today.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body model.User true "User payload"
// @Success 201 {object} Envelope{data=model.User}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var user model.User
	if err := bindAndValidate(c, &user); err != nil {
		return err
	}
	created, err := h.svc.CreateUser(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, created)
}

// UpdateUser godoc
// @Summary Replace user
// @Description createdAt is never changed by an update.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body model.User true "Full user"
// @Success 200 {object} Envelope{data=model.User}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id := c.Param("id")
	var user model.User
	if err := bindAndValidate(c, &user); err != nil {
		return err
	}
	if err := checkPathID(id, user.ID); err != nil {
		return err
	}
	user.ID = id
	updated, err := h.svc.UpdateUser(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, updated)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, http.StatusOK, nil)
}
