package reservation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
)

type postgresRepository struct{ db database.DBTX }

// NewPostgresRepository creates a new PostgreSQL reservation repository.
func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) WithTx(tx database.DBTX) Repository {
	return &postgresRepository{db: tx}
}

func (r *postgresRepository) Insert(ctx context.Context, res *Reservation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reservations (id, fruit_id, shop_id, quantity, reserved_on, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		res.ID, res.FruitID, res.ShopID, res.Quantity, res.ReservedOn, res.Status)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	res := &Reservation{}
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, fruit_id, shop_id, quantity, reserved_on, status
		FROM reservations WHERE id = $1`, id).
		Scan(&res.ID, &res.FruitID, &res.ShopID, &res.Quantity, &res.ReservedOn, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("reservation %s does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	res.Status, err = ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *postgresRepository) ListByShop(ctx context.Context, shopID int64) ([]*Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fruit_id, shop_id, quantity, reserved_on, status
		FROM reservations WHERE shop_id = $1 ORDER BY reserved_on DESC`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reservations []*Reservation
	for rows.Next() {
		res := &Reservation{}
		var status string
		if err := rows.Scan(&res.ID, &res.FruitID, &res.ShopID, &res.Quantity, &res.ReservedOn, &status); err != nil {
			return nil, err
		}
		if res.Status, err = ParseStatus(status); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *postgresRepository) NeedsByCountry(ctx context.Context, country string) ([]*NeedLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.name, SUM(r.quantity)
		FROM reservations r
		JOIN fruits f ON f.id = r.fruit_id
		WHERE f.source_country = $1 AND r.status = $2
		GROUP BY f.id, f.name
		HAVING SUM(r.quantity) > 0
		ORDER BY f.name`, country, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []*NeedLine
	for rows.Next() {
		line := &NeedLine{}
		if err := rows.Scan(&line.FruitID, &line.FruitName, &line.Total); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *postgresRepository) UpdateStatusForCountry(ctx context.Context, fruitID int64, country string, from, to Status) (int64, int, error) {
	rows, err := r.db.QueryContext(ctx, `
		UPDATE reservations r
		SET status = $1
		FROM shops s
		WHERE s.id = r.shop_id AND r.fruit_id = $2 AND s.country = $3 AND r.status = $4
		RETURNING r.quantity`,
		to, fruitID, country, from)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()
	var moved int64
	var total int
	for rows.Next() {
		var qty int
		if err := rows.Scan(&qty); err != nil {
			return 0, 0, err
		}
		moved++
		total += qty
	}
	return moved, total, rows.Err()
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []Status, to Status) error {
	expected := make([]string, len(from))
	for i, st := range from {
		expected[i] = string(st)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE reservations SET status = $1 WHERE id = $2 AND status = ANY($3)`,
		to, id, pq.Array(expected))
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.StateConflict("reservation %s no longer permits the transition to %s", id, to)
	}
	return nil
}
