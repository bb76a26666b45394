package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/unrolled/secure"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/auth"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/config"
	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/handler"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/metrics"
)

// Deps carries everything the routes need.
type Deps struct {
	Logger     *slog.Logger
	JWT        *auth.JWTService
	Tokens     auth.TokenStoreInterface
	Metrics    *metrics.Metrics
	Products   *handler.ProductHandler
	Users      *handler.UserHandler
	Inventory  *handler.InventoryHandler
	Initialize *handler.InitializeHandler
	Auth       *handler.AuthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}).Handler))
	e.Use(deps.Metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	if cfg.RateLimit > 0 {
		api.Use(echo.WrapMiddleware(httprate.Limit(cfg.RateLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				handler.Fail(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			}),
		)))
	}
	api.Use(echojwt.WithConfig(echojwt.Config{
		ContextKey:     auth.ContextKey,
		TokenLookup:    "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: parseToken(deps.JWT, deps.Tokens),
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrStorage) {
				return err
			}
			return fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
		},
	}))

	// Products
	api.GET("/products", deps.Products.ListProducts)
	api.POST("/products", deps.Products.CreateProduct)
	api.PUT("/products/:id", deps.Products.UpdateProduct)
	api.DELETE("/products/:id", deps.Products.DeleteProduct)

	// Users
	api.GET("/users", deps.Users.ListUsers)
	api.POST("/users", deps.Users.CreateUser)
	api.PUT("/users/:id", deps.Users.UpdateUser)
	api.DELETE("/users/:id", deps.Users.DeleteUser)

	api.POST("/initialize", deps.Initialize.Initialize)

	// Inventory dashboard
	api.GET("/inventory/stats", deps.Inventory.Stats)
	api.GET("/inventory/chart", deps.Inventory.Chart)
	api.GET("/inventory/attention", deps.Inventory.Attention)

	if deps.Auth != nil {
		api.GET("/auth/me", deps.Auth.Me)
		api.POST("/auth/logout", deps.Auth.Logout)
	}
}

// parseToken validates the bearer token and rejects revoked ones.
func parseToken(jwtSvc *auth.JWTService, tokens auth.TokenStoreInterface) func(echo.Context, string) (any, error) {
	return func(c echo.Context, raw string) (any, error) {
		claims, err := jwtSvc.ValidateToken(raw)
		if err != nil {
			return nil, err
		}
		if tokens == nil {
			return claims, nil
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		revoked, err := tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", apperrors.ErrUnauthorized)
		}
		return claims, nil
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator installed on the echo instance.
// Field names in messages use their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failures match ErrValidation.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validationf("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return apperrors.Validationf("%s", strings.Join(msgs, "; "))
}
