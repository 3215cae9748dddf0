package inventory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
)

type postgresStore struct{ db database.DBTX }

// NewPostgresStore creates a Postgres-backed inventory ledger.
func NewPostgresStore(db database.DBTX) Store { return &postgresStore{db: db} }

func (s *postgresStore) WithTx(tx database.DBTX) Store { return &postgresStore{db: tx} }

// isFKViolation returns true when the error is a PostgreSQL foreign key
// constraint violation (code 23503), i.e. the fruit or location row is missing.
func isFKViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func (s *postgresStore) Quantity(ctx context.Context, fruitID int64, loc Location) (int, error) {
	var query string
	switch loc.Kind {
	case KindShop:
		query = `SELECT quantity FROM inventory WHERE fruit_id = $1 AND shop_id = $2`
	case KindWarehouse:
		query = `SELECT quantity FROM inventory WHERE fruit_id = $1 AND warehouse_id = $2`
	default:
		return 0, apperr.Validation("unknown location kind %q", loc.Kind)
	}

	var qty int
	err := s.db.QueryRowContext(ctx, query, fruitID, loc.ID).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil // absent means zero
	}
	if err != nil {
		return 0, err
	}
	return qty, nil
}

func (s *postgresStore) Adjust(ctx context.Context, fruitID int64, loc Location, delta int) error {
	switch {
	case delta == 0:
		return nil
	case delta > 0:
		return s.add(ctx, fruitID, loc, delta)
	default:
		return s.remove(ctx, fruitID, loc, delta)
	}
}

// add upserts so the first positive adjustment creates the row.
func (s *postgresStore) add(ctx context.Context, fruitID int64, loc Location, delta int) error {
	var query string
	switch loc.Kind {
	case KindShop:
		query = `
			INSERT INTO inventory (fruit_id, shop_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (fruit_id, shop_id)
			DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity`
	case KindWarehouse:
		query = `
			INSERT INTO inventory (fruit_id, warehouse_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (fruit_id, warehouse_id)
			DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity`
	default:
		return apperr.Validation("unknown location kind %q", loc.Kind)
	}

	if _, err := s.db.ExecContext(ctx, query, fruitID, loc.ID, delta); err != nil {
		if isFKViolation(err) {
			return apperr.NotFound("fruit %d or %s does not exist", fruitID, loc)
		}
		return err
	}
	return nil
}

// remove is a single guarded decrement. Zero rows affected means the row
// is missing or the current quantity is too low; either way the stock is
// insufficient and nothing changed.
func (s *postgresStore) remove(ctx context.Context, fruitID int64, loc Location, delta int) error {
	var query string
	switch loc.Kind {
	case KindShop:
		query = `
			UPDATE inventory
			SET quantity = quantity + $1
			WHERE fruit_id = $2 AND shop_id = $3 AND quantity + $1 >= 0`
	case KindWarehouse:
		query = `
			UPDATE inventory
			SET quantity = quantity + $1
			WHERE fruit_id = $2 AND warehouse_id = $3 AND quantity + $1 >= 0`
	default:
		return apperr.Validation("unknown location kind %q", loc.Kind)
	}

	res, err := s.db.ExecContext(ctx, query, delta, fruitID, loc.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.InsufficientStock("fruit %d at %s", fruitID, loc)
	}
	return nil
}

func (s *postgresStore) Set(ctx context.Context, fruitID int64, loc Location, qty int) error {
	var query string
	switch loc.Kind {
	case KindShop:
		query = `
			INSERT INTO inventory (fruit_id, shop_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (fruit_id, shop_id)
			DO UPDATE SET quantity = EXCLUDED.quantity`
	case KindWarehouse:
		query = `
			INSERT INTO inventory (fruit_id, warehouse_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (fruit_id, warehouse_id)
			DO UPDATE SET quantity = EXCLUDED.quantity`
	default:
		return apperr.Validation("unknown location kind %q", loc.Kind)
	}

	if _, err := s.db.ExecContext(ctx, query, fruitID, loc.ID, qty); err != nil {
		if isFKViolation(err) {
			return apperr.NotFound("fruit %d or %s does not exist", fruitID, loc)
		}
		return err
	}
	return nil
}

func (s *postgresStore) ListAt(ctx context.Context, loc Location) ([]*Record, error) {
	var query string
	switch loc.Kind {
	case KindShop:
		query = `
			SELECT id, fruit_id, quantity FROM inventory
			WHERE shop_id = $1 ORDER BY fruit_id`
	case KindWarehouse:
		query = `
			SELECT id, fruit_id, quantity FROM inventory
			WHERE warehouse_id = $1 ORDER BY fruit_id`
	default:
		return nil, apperr.Validation("unknown location kind %q", loc.Kind)
	}

	rows, err := s.db.QueryContext(ctx, query, loc.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []*Record
	for rows.Next() {
		rec := &Record{Location: loc}
		if err := rows.Scan(&rec.ID, &rec.FruitID, &rec.Quantity); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
