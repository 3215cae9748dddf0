package analytics

import (
	"context"
	"time"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
	"github.com/freshline/supply-backend/internal/modules/reservation"
)

type postgresRepository struct{ db database.DBTX }

// NewPostgresRepository creates a new PostgreSQL analytics repository.
func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) DemandByDimension(ctx context.Context, status reservation.Status, dim Dimension, from, toExclusive time.Time) ([]*DemandRow, error) {
	var query string
	switch dim {
	case DimensionShop:
		query = `
			SELECT s.name, SUM(r.quantity)
			FROM reservations r
			JOIN shops s ON s.id = r.shop_id
			WHERE r.status = $1 AND r.reserved_on >= $2 AND r.reserved_on < $3
			GROUP BY s.name
			ORDER BY s.name`
	case DimensionCity:
		query = `
			SELECT s.city, SUM(r.quantity)
			FROM reservations r
			JOIN shops s ON s.id = r.shop_id
			WHERE r.status = $1 AND r.reserved_on >= $2 AND r.reserved_on < $3
			GROUP BY s.city
			ORDER BY s.city`
	case DimensionCountry:
		query = `
			SELECT s.country, SUM(r.quantity)
			FROM reservations r
			JOIN shops s ON s.id = r.shop_id
			WHERE r.status = $1 AND r.reserved_on >= $2 AND r.reserved_on < $3
			GROUP BY s.country
			ORDER BY s.country`
	default:
		return nil, apperr.Validation("unknown dimension %q", dim)
	}

	rows, err := r.db.QueryContext(ctx, query, status, from, toExclusive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*DemandRow
	for rows.Next() {
		row := &DemandRow{}
		if err := rows.Scan(&row.Key, &row.Total); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *postgresRepository) MonthlyFulfilled(ctx context.Context, year int) ([]*MonthlyTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.name, EXTRACT(MONTH FROM r.reserved_on)::int, SUM(r.quantity)
		FROM reservations r
		JOIN fruits f ON f.id = r.fruit_id
		WHERE r.status = $1 AND EXTRACT(YEAR FROM r.reserved_on) = $2
		GROUP BY f.id, f.name, EXTRACT(MONTH FROM r.reserved_on)
		ORDER BY f.name`, reservation.StatusFulfilled, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*MonthlyTotal
	for rows.Next() {
		row := &MonthlyTotal{}
		if err := rows.Scan(&row.FruitID, &row.FruitName, &row.Month, &row.Total); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *postgresRepository) FulfilledTotal(ctx context.Context, fruitID int64, from, toExclusive time.Time) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM reservations
		WHERE fruit_id = $1 AND status = $2 AND reserved_on >= $3 AND reserved_on < $4`,
		fruitID, reservation.StatusFulfilled, from, toExclusive).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
