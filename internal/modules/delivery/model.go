package delivery

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a delivery. Deliveries are created
// SCHEDULED by the reservation workflow; no receipt transition is modeled.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
)

// Delivery is a bulk warehouse-to-warehouse shipment covering the
// approved reservations of one fruit in one country.
type Delivery struct {
	ID              uuid.UUID `json:"id"`
	FruitID         int64     `json:"fruit_id"`
	FromWarehouseID int64     `json:"from_warehouse_id"`
	ToWarehouseID   int64     `json:"to_warehouse_id"`
	Quantity        int       `json:"quantity"`
	ScheduledOn     time.Time `json:"scheduled_on"`
	Status          Status    `json:"status"`
}
