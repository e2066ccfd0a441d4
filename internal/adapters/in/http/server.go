// Package http exposes the fulfillment API over HTTP using echo.
// It translates requests into commands and queries and maps the error
// taxonomy onto status codes: validation failures become 400, missing
// objects 404, rejected transitions and duplicate or concurrent work 409.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	retryOrderHandler   commands.RetryOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	deleteOrderHandler  commands.DeleteOrderCommandHandler

	getOrderHandler  queries.GetOrderQueryHandler
	getReportHandler queries.GetReportQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	retryOrderHandler commands.RetryOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getReportHandler queries.GetReportQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		retryOrderHandler:   retryOrderHandler,
		changeStatusHandler: changeStatusHandler,
		deleteOrderHandler:  deleteOrderHandler,
		getOrderHandler:     getOrderHandler,
		getReportHandler:    getReportHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/:id", s.GetOrder)
	e.POST("/orders/:id/retry", s.RetryOrder)

	e.POST("/admin/orders/:id/status", s.ChangeOrderStatus)
	e.GET("/admin/report", s.GetReport)
	e.DELETE("/admin/orders/:id", s.DeleteOrder)
}

// ErrorBody is the JSON error envelope returned by every endpoint.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, errs.ErrAlreadyRunning):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, err error) error {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(status, ErrorBody{
		Code:    status,
		Message: message,
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// NewOrderRequest is the request body for order creation. The order id is
// optional; omitted ids are generated server-side.
type NewOrderRequest struct {
	OrderID      string `json:"order_id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	Quantity     int    `json:"quantity"`
	DesignPrompt string `json:"design_prompt"`
	Language     string `json:"language"`
}

// NewOrderResponse acknowledges an accepted order.
type NewOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateOrder handles POST /orders. The order is persisted and processing is
// scheduled in the background, so the response is 202, not 201: acceptance
// does not mean fulfillment.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		parsed, err := kernel.UUIDFromString(req.OrderID)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorBody{
				Code:    http.StatusBadRequest,
				Message: "invalid order id: " + err.Error(),
			})
		}
		orderID = parsed
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.Name, req.Email, req.Size, req.Color, req.Quantity, req.DesignPrompt, req.Language)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, NewOrderResponse{
		ID:     orderID.String(),
		Status: order.Received.String(),
	})
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{
			Code:    http.StatusBadRequest,
			Message: "invalid order id: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// RetryOrder handles POST /orders/:id/retry.
func (s *Server) RetryOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{
			Code:    http.StatusBadRequest,
			Message: "invalid order id: " + err.Error(),
		})
	}

	cmd, err := commands.NewRetryOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.retryOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, NewOrderResponse{
		ID:     orderID.String(),
		Status: order.Retrying.String(),
	})
}

// ChangeStatusRequest is the request body for admin status changes.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatus handles POST /admin/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{
			Code:    http.StatusBadRequest,
			Message: "invalid order id: " + err.Error(),
		})
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, NewOrderResponse{
		ID:     orderID.String(),
		Status: target.String(),
	})
}

// GetReport handles GET /admin/report?start=&end=. Bounds accept either
// RFC 3339 timestamps or plain dates; a date-only end bound covers the whole
// day.
func (s *Server) GetReport(ctx echo.Context) error {
	start, err := parseTimeParam(ctx.QueryParam("start"), false)
	if err != nil {
		return errorJSON(ctx, err)
	}

	end, err := parseTimeParam(ctx.QueryParam("end"), true)
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetReportQuery(start, end)
	if err != nil {
		return errorJSON(ctx, err)
	}

	report, err := s.getReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, report)
}

// DeleteOrder handles DELETE /admin/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{
			Code:    http.StatusBadRequest,
			Message: "invalid order id: " + err.Error(),
		})
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func parseTimeParam(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, errs.NewValueIsRequiredError("start and end query parameters")
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("date parameter", err)
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
