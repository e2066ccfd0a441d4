// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and their database
// representation. The phase log and the result record are stored as jsonb
// columns so the append-only log needs no extra table.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string
	Size         string
	Color        string
	Quantity     int
	DesignPrompt string
	Language     string
	Status       int         `gorm:"index"`
	Phases       PhaseLogDTO `gorm:"type:jsonb"`
	Result       ResultDTO   `gorm:"type:jsonb"`
	CreatedAt    time.Time   `gorm:"index"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PhaseLogDTO maps the order's phase log onto a jsonb column.
type PhaseLogDTO []order.Phase

// Value serializes the phase log for storage. A nil log is stored as an
// empty array, never as SQL NULL.
func (p PhaseLogDTO) Value() (driver.Value, error) {
	if p == nil {
		p = PhaseLogDTO{}
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan deserializes the phase log from its jsonb representation.
func (p *PhaseLogDTO) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*p = PhaseLogDTO{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported phase log column type %T", value)
	}
}

// ResultDTO maps the order's result record onto a jsonb column.
type ResultDTO order.Result

// Value serializes the result record for storage.
func (r ResultDTO) Value() (driver.Value, error) {
	raw, err := json.Marshal(order.Result(r))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan deserializes the result record from its jsonb representation.
func (r *ResultDTO) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*r = ResultDTO{}
		return nil
	case []byte:
		return json.Unmarshal(v, (*order.Result)(r))
	case string:
		return json.Unmarshal([]byte(v), (*order.Result)(r))
	default:
		return fmt.Errorf("unsupported result column type %T", value)
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	customer := aggregate.Customer()

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         customer.Name(),
		Email:        customer.Email(),
		Size:         customer.Size(),
		Color:        customer.Color(),
		Quantity:     customer.Quantity(),
		DesignPrompt: customer.DesignPrompt(),
		Language:     customer.Language(),
		Status:       int(aggregate.Status()),
		Phases:       aggregate.Phases(),
		Result:       ResultDTO(aggregate.Result()),
		CreatedAt:    aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO back to an order aggregate, re-running
// customer validation and reconstructing the aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(
		dto.Name, dto.Email, dto.Size, dto.Color, dto.Quantity, dto.DesignPrompt, dto.Language)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customer,
		order.Status(dto.Status),
		dto.Phases,
		order.Result(dto.Result),
		dto.CreatedAt,
	)
}
