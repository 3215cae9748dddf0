package delivery

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
)

type postgresRepository struct{ db database.DBTX }

// NewPostgresRepository creates a new PostgreSQL delivery repository.
func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) WithTx(tx database.DBTX) Repository {
	return &postgresRepository{db: tx}
}

func (r *postgresRepository) Insert(ctx context.Context, d *Delivery) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deliveries (id, fruit_id, from_warehouse_id, to_warehouse_id, quantity, scheduled_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.FruitID, d.FromWarehouseID, d.ToWarehouseID, d.Quantity, d.ScheduledOn, d.Status)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	d := &Delivery{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, fruit_id, from_warehouse_id, to_warehouse_id, quantity, scheduled_on, status
		FROM deliveries WHERE id = $1`, id).
		Scan(&d.ID, &d.FruitID, &d.FromWarehouseID, &d.ToWarehouseID, &d.Quantity, &d.ScheduledOn, &d.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("delivery %s does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postgresRepository) ListByWarehouse(ctx context.Context, warehouseID int64) ([]*Delivery, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fruit_id, from_warehouse_id, to_warehouse_id, quantity, scheduled_on, status
		FROM deliveries
		WHERE from_warehouse_id = $1 OR to_warehouse_id = $1
		ORDER BY scheduled_on DESC`, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var deliveries []*Delivery
	for rows.Next() {
		d := &Delivery{}
		if err := rows.Scan(&d.ID, &d.FruitID, &d.FromWarehouseID, &d.ToWarehouseID,
			&d.Quantity, &d.ScheduledOn, &d.Status); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
