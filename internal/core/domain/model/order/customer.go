package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through the NewCustomer factory function.
var ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("Customer must be created via NewCustomer")

// defaultLanguage is used when the caller does not specify a notification
// language.
const defaultLanguage = "en"

// Customer is a value object holding the attributes of the person placing
// an order.
//
// Invariants:
//   - name is non-empty after trimming whitespace
//   - email contains exactly one '@' with non-empty local and domain parts
//   - quantity is positive
type Customer struct {
	name         string
	email        string
	size         string
	color        string
	quantity     int
	designPrompt string
	language     string

	guard guard.ConstructorGuard
}

// NewCustomer creates a validated Customer. An empty language defaults to "en".
func NewCustomer(name, email, size, color string, quantity int, designPrompt, language string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}

	if err := validateEmail(email); err != nil {
		return Customer{}, err
	}

	if quantity <= 0 {
		return Customer{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if language == "" {
		language = defaultLanguage
	}

	return Customer{
		name:         name,
		email:        email,
		size:         size,
		color:        color,
		quantity:     quantity,
		designPrompt: designPrompt,
		language:     language,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("customer email")
	}

	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") {
		return errs.NewValueIsInvalidErrorWithCause("customer email",
			fmt.Errorf("%q is not a valid address", email))
	}

	return nil
}

// Validate ensures the Customer was created through NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer's name.
func (c Customer) Name() string {
	return c.name
}

// Email returns the customer's email address.
func (c Customer) Email() string {
	return c.email
}

// Size returns the requested T-shirt size.
func (c Customer) Size() string {
	return c.size
}

// Color returns the requested T-shirt color.
func (c Customer) Color() string {
	return c.color
}

// Quantity returns the number of shirts ordered.
func (c Customer) Quantity() int {
	return c.quantity
}

// DesignPrompt returns the customer's design description.
func (c Customer) DesignPrompt() string {
	return c.designPrompt
}

// Language returns the customer's notification language.
func (c Customer) Language() string {
	return c.language
}
