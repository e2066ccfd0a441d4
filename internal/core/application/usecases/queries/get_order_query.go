// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read directly
// from the database and return response DTOs, bypassing the domain aggregates.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full tracking view of one order: its current
// status, the chronological phase log, and the artifacts produced so far.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", view.ID, view.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's tracking view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to look up.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the tracking view returned to API callers.
type GetOrderQueryResponse struct {
	ID        kernel.UUID   `json:"id"`
	Status    string        `json:"status"`
	Customer  CustomerView  `json:"customer"`
	Phases    []order.Phase `json:"phases"`
	Result    order.Result  `json:"result"`
	CreatedAt time.Time     `json:"created_at"`
}

// CustomerView is the customer slice of the tracking view.
type CustomerView struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	Quantity     int    `json:"quantity"`
	DesignPrompt string `json:"design_prompt"`
	Language     string `json:"language"`
}
