package domain

import "fmt"

// CustomerType distinguishes regular customers from premium ones, whose
// account fees are waived.
type CustomerType int

const (
	RegularCustomer CustomerType = iota
	PremiumCustomer
)

func (t CustomerType) String() string {
	if t == PremiumCustomer {
		return "Premium"
	}
	return "Regular"
}

// ParseCustomerType maps the persisted label back to a CustomerType.
func ParseCustomerType(s string) (CustomerType, error) {
	switch s {
	case "Regular":
		return RegularCustomer, nil
	case "Premium":
		return PremiumCustomer, nil
	default:
		return 0, fmt.Errorf("unknown customer type %q", s)
	}
}

// Customer holds identity data attached to one or more accounts. Customers
// are immutable after creation and shared by every account they own.
type Customer struct {
	id      string
	name    string
	age     int
	contact string
	address string
	typ     CustomerType
}

// NewCustomer creates a customer with an identifier drawn from seq.
func NewCustomer(seq *Sequence, typ CustomerType, name string, age int, contact, address string) *Customer {
	return &Customer{
		id:      seq.Next(),
		name:    name,
		age:     age,
		contact: contact,
		address: address,
		typ:     typ,
	}
}

func (c *Customer) ID() string         { return c.id }
func (c *Customer) Name() string       { return c.name }
func (c *Customer) Age() int           { return c.age }
func (c *Customer) Contact() string    { return c.contact }
func (c *Customer) Address() string    { return c.address }
func (c *Customer) Type() CustomerType { return c.typ }

// HasWaivedFees reports whether account fees are waived for this customer.
func (c *Customer) HasWaivedFees() bool { return c.typ == PremiumCustomer }
