package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a reservation. Transitions run
// strictly forward: PENDING → APPROVED → SHIPPED → FULFILLED.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusShipped   Status = "SHIPPED"
	StatusFulfilled Status = "FULFILLED"
)

// ParseStatus converts a stored or submitted value into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusShipped, StatusFulfilled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

// Reservation is a shop's demand signal for a fruit. It carries no stock
// allocation until checkout; only the status field changes after creation.
type Reservation struct {
	ID         uuid.UUID `json:"id"`
	FruitID    int64     `json:"fruit_id"`
	ShopID     int64     `json:"shop_id"`
	Quantity   int       `json:"quantity"`
	ReservedOn time.Time `json:"reserved_on"`
	Status     Status    `json:"status"`
}

// NeedLine is one row of the aggregated demand for a country: the summed
// pending quantity of one fruit.
type NeedLine struct {
	FruitID   int64  `json:"fruit_id"`
	FruitName string `json:"fruit_name"`
	Total     int    `json:"total"`
}
