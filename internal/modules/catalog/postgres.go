package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
)

// ---- Fruit ----

type fruitPostgres struct{ db database.DBTX }

func NewFruitPostgresRepository(db database.DBTX) FruitRepository { return &fruitPostgres{db: db} }

func (r *fruitPostgres) WithTx(tx database.DBTX) FruitRepository { return &fruitPostgres{db: tx} }

func (r *fruitPostgres) Create(ctx context.Context, f *Fruit) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO fruits (name, source_country) VALUES ($1, $2) RETURNING id`,
		f.Name, f.SourceCountry).Scan(&f.ID)
}

func (r *fruitPostgres) GetByID(ctx context.Context, id int64) (*Fruit, error) {
	f := &Fruit{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, source_country FROM fruits WHERE id = $1`, id).
		Scan(&f.ID, &f.Name, &f.SourceCountry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("fruit %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fruitPostgres) List(ctx context.Context) ([]*Fruit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, source_country FROM fruits ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var fruits []*Fruit
	for rows.Next() {
		f := &Fruit{}
		if err := rows.Scan(&f.ID, &f.Name, &f.SourceCountry); err != nil {
			return nil, err
		}
		fruits = append(fruits, f)
	}
	return fruits, rows.Err()
}

// ---- Shop ----

type shopPostgres struct{ db database.DBTX }

func NewShopPostgresRepository(db database.DBTX) ShopRepository { return &shopPostgres{db: db} }

func (r *shopPostgres) WithTx(tx database.DBTX) ShopRepository { return &shopPostgres{db: tx} }

func (r *shopPostgres) Create(ctx context.Context, s *Shop) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO shops (name, city, country) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.City, s.Country).Scan(&s.ID)
}

func (r *shopPostgres) GetByID(ctx context.Context, id int64) (*Shop, error) {
	s := &Shop{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, city, country FROM shops WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.City, &s.Country)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("shop %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *shopPostgres) List(ctx context.Context) ([]*Shop, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, city, country FROM shops ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var shops []*Shop
	for rows.Next() {
		s := &Shop{}
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.Country); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

// ---- Warehouse ----

type warehousePostgres struct{ db database.DBTX }

func NewWarehousePostgresRepository(db database.DBTX) WarehouseRepository {
	return &warehousePostgres{db: db}
}

func (r *warehousePostgres) WithTx(tx database.DBTX) WarehouseRepository {
	return &warehousePostgres{db: tx}
}

func (r *warehousePostgres) Create(ctx context.Context, w *Warehouse) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO warehouses (name, city, country, is_source)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		w.Name, w.City, w.Country, w.IsSource).Scan(&w.ID)
}

func (r *warehousePostgres) GetByID(ctx context.Context, id int64) (*Warehouse, error) {
	w := &Warehouse{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, city, country, is_source FROM warehouses WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.City, &w.Country, &w.IsSource)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("warehouse %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *warehousePostgres) List(ctx context.Context) ([]*Warehouse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, city, country, is_source FROM warehouses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var warehouses []*Warehouse
	for rows.Next() {
		w := &Warehouse{}
		if err := rows.Scan(&w.ID, &w.Name, &w.City, &w.Country, &w.IsSource); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (r *warehousePostgres) CentralInCountry(ctx context.Context, country string) (*Warehouse, error) {
	w := &Warehouse{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, city, country, is_source
		FROM warehouses
		WHERE country = $1 AND is_source = FALSE
		ORDER BY id
		LIMIT 1`, country).
		Scan(&w.ID, &w.Name, &w.City, &w.Country, &w.IsSource)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no central warehouse in %s", country)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}
