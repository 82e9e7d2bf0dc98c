// Package http exposes the read-only REST surface: health, metrics, single
// order lookup and the summary report.
package http

import (
	"errors"
	"net/http"
	"time"

	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and the query side.
type Server struct {
	getOrderHandler      queries.GetOrderQueryHandler
	getOrderStatsHandler queries.GetOrderStatsQueryHandler
	registry             *prometheus.Registry
}

// NewServer creates an HTTP server over the query handlers. The registry
// backs the /metrics endpoint.
func NewServer(
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderStatsHandler queries.GetOrderStatsQueryHandler,
	registry *prometheus.Registry,
) *Server {
	return &Server{
		getOrderHandler:      getOrderHandler,
		getOrderStatsHandler: getOrderStatsHandler,
		registry:             registry,
	}
}

// Register mounts all routes on the echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	e.GET("/api/v1/orders/:id", s.GetOrder)
	e.GET("/api/v1/reports/summary", s.GetSummary)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with history.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.OrderIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	orderView, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, orderView)
}

// GetSummary handles GET /api/v1/reports/summary - order counts for a window.
// Defaults to the current UTC day; from/to query parameters accept RFC 3339
// timestamps.
func (s *Server) GetSummary(ctx echo.Context) error {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	var err error
	if raw := ctx.QueryParam("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid from timestamp",
			})
		}
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid to timestamp",
			})
		}
	}

	query, err := queries.NewGetOrderStatsQuery(from, to)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid report window",
		})
	}

	stats, err := s.getOrderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build summary",
		})
	}

	return ctx.JSON(http.StatusOK, stats)
}
