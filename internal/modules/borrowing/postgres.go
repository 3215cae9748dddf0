package borrowing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
)

type postgresRepository struct{ db database.DBTX }

// NewPostgresRepository creates a new PostgreSQL borrowing repository.
func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) WithTx(tx database.DBTX) Repository {
	return &postgresRepository{db: tx}
}

func (r *postgresRepository) Insert(ctx context.Context, b *Borrowing) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO borrowings (id, fruit_id, lender_shop_id, borrower_shop_id, quantity, requested_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.FruitID, b.LenderShopID, b.BorrowerShopID, b.Quantity, b.RequestedOn, b.Status)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Borrowing, error) {
	b := &Borrowing{}
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, fruit_id, lender_shop_id, borrower_shop_id, quantity, requested_on, status
		FROM borrowings WHERE id = $1`, id).
		Scan(&b.ID, &b.FruitID, &b.LenderShopID, &b.BorrowerShopID, &b.Quantity, &b.RequestedOn, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("borrowing %s does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	b.Status, err = ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE borrowings SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.StateConflict("borrowing %s is no longer %s", id, from)
	}
	return nil
}

func (r *postgresRepository) ListByShop(ctx context.Context, shopID int64) ([]*Borrowing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fruit_id, lender_shop_id, borrower_shop_id, quantity, requested_on, status
		FROM borrowings
		WHERE lender_shop_id = $1 OR borrower_shop_id = $1
		ORDER BY requested_on DESC`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var borrowings []*Borrowing
	for rows.Next() {
		b := &Borrowing{}
		var status string
		if err := rows.Scan(&b.ID, &b.FruitID, &b.LenderShopID, &b.BorrowerShopID,
			&b.Quantity, &b.RequestedOn, &status); err != nil {
			return nil, err
		}
		if b.Status, err = ParseStatus(status); err != nil {
			return nil, err
		}
		borrowings = append(borrowings, b)
	}
	return borrowings, rows.Err()
}
