package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetReportQueryIsNotConstructed = errors.New(
	"GetReportQuery must be created via NewGetReportQuery constructor",
)

// GetReportQuery requests aggregate order statistics for a date range.
// The range is inclusive on both ends.
//
// Example:
//
//	query, err := NewGetReportQuery(weekStart, weekEnd)
//	if err != nil {
//	    return err
//	}
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to build report: %w", err)
//	}
//	fmt.Printf("%d orders, %d completed\n", report.TotalOrders, report.CompletedOrders)
type GetReportQuery struct {
	start time.Time
	end   time.Time

	guard guard.ConstructorGuard
}

// NewGetReportQuery creates a report query for [start, end]. An end before
// start is rejected with a ValueIsInvalidError.
func NewGetReportQuery(start, end time.Time) (GetReportQuery, error) {
	if start.IsZero() {
		return GetReportQuery{}, errs.NewValueIsRequiredError("start")
	}
	if end.IsZero() {
		return GetReportQuery{}, errs.NewValueIsRequiredError("end")
	}
	if end.Before(start) {
		return GetReportQuery{}, errs.NewValueIsInvalidErrorWithCause("date range",
			fmt.Errorf("end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)))
	}

	return GetReportQuery{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReportQuery) Validate() error {
	return q.guard.Validate(ErrGetReportQueryIsNotConstructed)
}

// Start returns the inclusive lower bound of the range.
func (q GetReportQuery) Start() time.Time {
	return q.start
}

// End returns the inclusive upper bound of the range.
func (q GetReportQuery) End() time.Time {
	return q.end
}

// GetReportQueryResponse is the aggregate view over orders created in the
// requested range. Revenue counts completed orders only, priced per shirt.
type GetReportQueryResponse struct {
	Start           time.Time      `json:"start"`
	End             time.Time      `json:"end"`
	TotalOrders     int            `json:"total_orders"`
	CompletedOrders int            `json:"completed_orders"`
	FailedOrders    int            `json:"failed_orders"`
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	ShirtsSold      int            `json:"shirts_sold"`
	RevenueCents    int64          `json:"revenue_cents"`
}
