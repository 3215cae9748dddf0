package borrowing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a borrowing. PENDING moves to exactly
// one of APPROVED or REJECTED; both are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus converts a stored or submitted value into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown borrowing status %q", s)
	}
}

// Borrowing is a lateral transfer of a fruit between two shops. Only the
// status field changes after creation.
type Borrowing struct {
	ID             uuid.UUID `json:"id"`
	FruitID        int64     `json:"fruit_id"`
	LenderShopID   int64     `json:"lender_shop_id"`
	BorrowerShopID int64     `json:"borrower_shop_id"`
	Quantity       int       `json:"quantity"`
	RequestedOn    time.Time `json:"requested_on"`
	Status         Status    `json:"status"`
}
