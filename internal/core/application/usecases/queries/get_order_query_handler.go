package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order's tracking view from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order tracking queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query for a single order. Returns an
// ObjectNotFoundError when no order with the given id exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			size,
			color,
			quantity,
			design_prompt,
			language,
			status,
			phases,
			result,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id        uuid.UUID
		view      GetOrderQueryResponse
		status    int
		rawPhases []byte
		rawResult []byte
		createdAt time.Time
	)

	err := row.Scan(
		&id,
		&view.Customer.Name,
		&view.Customer.Email,
		&view.Customer.Size,
		&view.Customer.Color,
		&view.Customer.Quantity,
		&view.Customer.DesignPrompt,
		&view.Customer.Language,
		&status,
		&rawPhases,
		&rawResult,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	view.ID = orderID
	view.Status = order.Status(status).String()
	view.CreatedAt = createdAt

	view.Phases = make([]order.Phase, 0)
	if len(rawPhases) > 0 {
		if err = json.Unmarshal(rawPhases, &view.Phases); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	if len(rawResult) > 0 {
		if err = json.Unmarshal(rawResult, &view.Result); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	return view, nil
}
