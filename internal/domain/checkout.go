package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStatus string

const (
	CheckoutStatusPending    CheckoutStatus = "Pending"
	CheckoutStatusInProgress CheckoutStatus = "InProgress"
	CheckoutStatusCompleted  CheckoutStatus = "Completed"
)

// Checkout is the buyer's placed order. Items are snapshots taken when
// the checkout was placed and never change afterwards.
type Checkout struct {
	ID        int
	UserID    int
	FirstName string
	LastName  string
	Street    string
	City      string
	State     string
	Zipcode   string
	Mobile    string
	UserMail  string
	Total     decimal.Decimal
	Status    CheckoutStatus
	Items     []CheckoutItem
	CreatedAt time.Time
}

type CheckoutItem struct {
	ProductID   int
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

func (c Checkout) ProductIDs() []int {
	ids := make([]int, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.ProductID
	}

	return ids
}
