package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetReportQuery(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	query, err := queries.NewGetReportQuery(start, end)
	require.NoError(t, err)
	assert.Equal(t, start, query.Start())
	assert.Equal(t, end, query.End())
	assert.NoError(t, query.Validate())
}

func TestNewGetReportQuery_SameDay(t *testing.T) {
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetReportQuery(day, day)
	assert.NoError(t, err, "a single-day range is valid")
}

func TestNewGetReportQuery_EndBeforeStart(t *testing.T) {
	start := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetReportQuery(start, end)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetReportQuery_ZeroBounds(t *testing.T) {
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetReportQuery(time.Time{}, day)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetReportQuery(day, time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetReportQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetReportQuery{}
	assert.ErrorIs(t, query.Validate(), queries.ErrGetReportQueryIsNotConstructed)
}
