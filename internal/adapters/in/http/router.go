package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type RouterConfig struct {
	JWTSecret      []byte
	RequestTimeout time.Duration
}

// NewRouter builds the echo instance: health, metrics and the API document are
// public, the API under /api/v1 requires a bearer token and requests matching the
// document.
func NewRouter(server *Server, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := OpenAPI()
	if err != nil {
		return nil, err
	}
	if err := registerDoc(doc); err != nil {
		return nil, err
	}
	validateDocument, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(Metrics())
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", JWTMiddleware(cfg.JWTSecret), validateDocument)
	server.Register(api)

	return e, nil
}
