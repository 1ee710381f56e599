package infra

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/umalmyha/clientes/docs" // swagger docs
	"github.com/umalmyha/clientes/internal/config"
	"github.com/umalmyha/clientes/internal/handlers"
	"github.com/umalmyha/clientes/internal/metrics"
	"github.com/umalmyha/clientes/internal/middleware"
	"github.com/umalmyha/clientes/internal/repository"
	"github.com/umalmyha/clientes/internal/service"
	"github.com/umalmyha/clientes/internal/validation"
	"github.com/umalmyha/clientes/pkg/docstore"
)

func Router(cfg config.Config, logger *logrus.Logger, reg *prometheus.Registry) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		middleware.Logger(c).WithError(err).Error("unhandled error")
		e.DefaultHTTPErrorHandler(err, c)
	}

	// Validator and renderer
	vld, err := validation.English()
	if err != nil {
		return nil, fmt.Errorf("failed to build validator - %w", err)
	}
	e.Validator = vld

	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// Metrics
	mtr := metrics.New(reg)

	// Remote document API
	docClient := docstore.NewClient(
		cfg.RemoteCfg.URL,
		cfg.RemoteCfg.Collection,
		docstore.WithHTTPClient(&http.Client{Timeout: cfg.RemoteCfg.Timeout}),
		docstore.WithLogger(logger.WithField("component", "docstore")),
		docstore.WithObserver(mtr),
	)

	// Repositories
	customerRps := repository.NewRemoteCustomerRepository(docClient, mtr)

	// Services
	customerSvc := service.NewCustomerService(customerRps)

	// Handlers
	customerHandler := handlers.NewCustomerHTTPHandler(customerSvc, cfg.IsDevelopment())
	diagnosticHandler := handlers.NewDiagnosticHTTPHandler(docClient)

	// Middleware
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	// Pages and fragments
	e.GET("/", customerHandler.Index)

	clientes := e.Group("/clientes")
	clientes.GET("/listado", customerHandler.List)
	clientes.GET("/insertar", customerHandler.InsertForm)
	clientes.GET("/actualizar-eliminar", customerHandler.UpdateDeleteForm)

	// Form actions
	clientes.POST("/insertar", customerHandler.Insert)
	clientes.POST("/actualizar-id", customerHandler.UpdateByID)
	clientes.POST("/eliminar-id", customerHandler.DeleteByID)
	clientes.POST("/actualizar-nombre", customerHandler.UpdateByName)
	clientes.POST("/eliminar-nombre", customerHandler.DeleteByName)

	// Diagnostics
	e.GET("/diagnostico/ping", diagnosticHandler.Ping)
	e.GET("/health", diagnosticHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
