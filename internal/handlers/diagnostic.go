package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/clientes/internal/middleware"
	"github.com/umalmyha/clientes/pkg/docstore"
)

// RemoteProbe sends raw listing request to the remote API
type RemoteProbe interface {
	Find(ctx context.Context, name string) (*docstore.Response, error)
}

// DiagnosticHTTPHandler exposes raw remote API responses and liveness
type DiagnosticHTTPHandler struct {
	probe RemoteProbe
}

func NewDiagnosticHTTPHandler(probe RemoteProbe) *DiagnosticHTTPHandler {
	return &DiagnosticHTTPHandler{probe: probe}
}

// Ping returns raw remote listing response
// @Summary     Ping remote API
// @Description Sends listing request to the remote API and returns its status and raw body
// @Tags        diagnostics
// @Produce     plain
// @Param       nombre query    string false "Name filter"
// @Success     200    {string} string "STATUS <code> followed by raw body"
// @Failure     502    {string} string
// @Router      /diagnostico/ping [get]
func (h *DiagnosticHTTPHandler) Ping(c echo.Context) error {
	res, err := h.probe.Find(c.Request().Context(), c.QueryParam("nombre"))
	if err != nil {
		middleware.Logger(c).WithError(err).Error("remote API ping failed")
		return c.String(http.StatusBadGateway, fmt.Sprintf("ERROR %v", err))
	}
	return c.String(http.StatusOK, fmt.Sprintf("STATUS %d\n%s", res.StatusCode, res.Body))
}

// Health reports liveness of the portal itself
// @Summary     Health check
// @Tags        diagnostics
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /health [get]
func (h *DiagnosticHTTPHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
