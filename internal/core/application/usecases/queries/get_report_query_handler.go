package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// unitPriceCents is the flat per-shirt price used for revenue reporting.
const unitPriceCents = 1999

// GetReportQueryHandler builds aggregate order statistics from the database.
type GetReportQueryHandler struct {
	db *gorm.DB
}

// NewGetReportQueryHandler creates a handler for report queries.
func NewGetReportQueryHandler(db *gorm.DB) GetReportQueryHandler {
	return GetReportQueryHandler{db: db}
}

// Handle executes the report query. Orders are bucketed by their creation
// timestamp; an empty range yields a zeroed report, not an error.
func (h GetReportQueryHandler) Handle(
	ctx context.Context,
	query GetReportQuery,
) (GetReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReportQueryResponse{}, err
	}

	report := GetReportQueryResponse{
		Start:          query.Start(),
		End:            query.End(),
		OrdersByStatus: make(map[string]int),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(quantity), 0)
		FROM orders
		WHERE created_at >= ? AND created_at <= ?
		GROUP BY status
	`, query.Start(), query.End()).Rows()
	if err != nil {
		return GetReportQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status   int
			count    int
			quantity int
		)

		if err = rows.Scan(&status, &count, &quantity); err != nil {
			return GetReportQueryResponse{}, err
		}

		report.TotalOrders += count
		report.OrdersByStatus[order.Status(status).String()] = count

		switch order.Status(status) {
		case order.Completed:
			report.CompletedOrders = count
			report.ShirtsSold = quantity
			report.RevenueCents = int64(quantity) * unitPriceCents
		case order.Failed:
			report.FailedOrders = count
		}
	}

	if err = rows.Err(); err != nil {
		return GetReportQueryResponse{}, err
	}

	return report, nil
}
