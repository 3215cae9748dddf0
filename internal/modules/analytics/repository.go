package analytics

import (
	"context"
	"time"

	"github.com/freshline/supply-backend/internal/modules/reservation"
)

// Repository defines the read-only projections the engine is built on.
// No method mutates state; snapshot consistency of a single query is the
// only atomicity requirement.
type Repository interface {
	// DemandByDimension sums reservation quantities with the given status
	// grouped by shop, city, or country. The range is half-open: from is
	// included, toExclusive is not. Callers pass midnight after the last
	// day they want covered, since reservations carry full timestamps.
	DemandByDimension(ctx context.Context, status reservation.Status, dim Dimension, from, toExclusive time.Time) ([]*DemandRow, error)

	// MonthlyFulfilled sums fulfilled reservation quantities per fruit
	// and calendar month for one year.
	MonthlyFulfilled(ctx context.Context, year int) ([]*MonthlyTotal, error)

	// FulfilledTotal sums the fulfilled quantity of one fruit. Half-open
	// range, same convention as DemandByDimension.
	FulfilledTotal(ctx context.Context, fruitID int64, from, toExclusive time.Time) (int, error)
}
