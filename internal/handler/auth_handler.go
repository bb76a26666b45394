package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/auth"
	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
)

// AuthHandler handles token endpoints.
type AuthHandler struct {
	tokens auth.TokenStoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(tokens auth.TokenStoreInterface) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// TokenInfo describes the caller's bearer token.
type TokenInfo struct {
	Subject   string `json:"subject"`
	Role      string `json:"role,omitempty"`
	TokenID   string `json:"tokenId"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

func tokenInfo(claims *auth.Claims) TokenInfo {
	info := TokenInfo{Subject: claims.Subject, Role: claims.Role, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.UTC().Format(http.TimeFormat)
	}
	return info
}

// Me godoc
// @Summary Describe the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=TokenInfo}
// @Failure 401 {object} Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, found := auth.ClaimsFromContext(c.Get)
	if !found {
		return apperrors.ErrUnauthorized
	}
	return ok(c, http.StatusOK, tokenInfo(claims))
}

// Logout godoc
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, found := auth.ClaimsFromContext(c.Get)
	if !found {
		return apperrors.ErrUnauthorized
	}
	expires := claims.ExpiresAt
	if expires == nil {
		return apperrors.ErrUnauthorized
	}
	if err := h.tokens.Revoke(c.Request().Context(), claims.ID, expires.Time); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "token revoked"})
}
