package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer(t *testing.T) order.Customer {
	t.Helper()
	customer, err := order.NewCustomer(
		"Linh Tran", "linh@example.com", "M", "black", 2, "a cat surfing a wave", "vi")
	require.NoError(t, err)
	return customer
}

func TestNewCustomer_Valid(t *testing.T) {
	customer := validCustomer(t)

	assert.Equal(t, "Linh Tran", customer.Name())
	assert.Equal(t, "linh@example.com", customer.Email())
	assert.Equal(t, "M", customer.Size())
	assert.Equal(t, "black", customer.Color())
	assert.Equal(t, 2, customer.Quantity())
	assert.Equal(t, "a cat surfing a wave", customer.DesignPrompt())
	assert.Equal(t, "vi", customer.Language())
	require.NoError(t, customer.Validate())
}

func TestNewCustomer_TrimsName(t *testing.T) {
	customer, err := order.NewCustomer("  Linh  ", "linh@example.com", "M", "black", 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Linh", customer.Name())
}

func TestNewCustomer_DefaultLanguage(t *testing.T) {
	customer, err := order.NewCustomer("Linh", "linh@example.com", "M", "black", 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, "en", customer.Language())
}

func TestNewCustomer_EmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := order.NewCustomer(name, "linh@example.com", "M", "black", 1, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	}
}

func TestNewCustomer_InvalidEmail(t *testing.T) {
	invalid := []string{
		"linhexample.com", // no @
		"@example.com",    // empty local part
		"linh@",           // empty domain
		"linh@@example.com",
		"linh@ex@ample.com",
	}
	for _, email := range invalid {
		_, err := order.NewCustomer("Linh", email, "M", "black", 1, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, "email %q should be rejected", email)
	}
}

func TestNewCustomer_EmptyEmail(t *testing.T) {
	_, err := order.NewCustomer("Linh", "", "M", "black", 1, "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCustomer_InvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1, -100} {
		_, err := order.NewCustomer("Linh", "linh@example.com", "M", "black", quantity, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, "quantity %d should be rejected", quantity)
	}
}

func TestCustomer_Validate_ZeroValue(t *testing.T) {
	var customer order.Customer
	require.Error(t, customer.Validate())
	assert.Equal(t, order.ErrCustomerIsNotConstructed, customer.Validate())
}
