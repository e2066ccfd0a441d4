// Package packaging creates the order-detail files handed to production.
// Each order gets its own directory containing a CSV file with the customer
// and order attributes.
package packaging

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CSVPackager writes order packages as CSV files under a base output
// directory.
type CSVPackager struct {
	outputDir string
}

// NewCSVPackager creates a packager rooted at outputDir. The directory is
// created on first use.
func NewCSVPackager(outputDir string) *CSVPackager {
	return &CSVPackager{outputDir: outputDir}
}

// CreatePackage writes the order-detail CSV for the given order and returns
// its path. An existing package for the same order is overwritten, which is
// what a retry run needs.
func (p *CSVPackager) CreatePackage(
	ctx context.Context,
	orderID kernel.UUID,
	customer order.Customer,
) (ports.PackageResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.PackageResult{}, err
	}

	orderDir := filepath.Join(p.outputDir, orderID.String())
	if err := os.MkdirAll(orderDir, 0o755); err != nil {
		return ports.PackageResult{}, fmt.Errorf("create package directory: %w", err)
	}

	filePath := filepath.Join(orderDir, "order_details.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return ports.PackageResult{}, fmt.Errorf("create package file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	records := [][]string{
		{"field", "value"},
		{"order_id", orderID.String()},
		{"name", customer.Name()},
		{"email", customer.Email()},
		{"size", customer.Size()},
		{"color", customer.Color()},
		{"quantity", strconv.Itoa(customer.Quantity())},
		{"design_prompt", customer.DesignPrompt()},
		{"language", customer.Language()},
	}

	if err = writer.WriteAll(records); err != nil {
		return ports.PackageResult{}, fmt.Errorf("write package file: %w", err)
	}

	if err = file.Sync(); err != nil {
		return ports.PackageResult{}, err
	}

	return ports.PackageResult{FilePath: filePath}, nil
}
