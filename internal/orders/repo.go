package orders

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, customer_email, status, total, items, created_at
		FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Order, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, customer_email, status, total, items, created_at
		FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *Repo) Create(ctx context.Context, o Order) (Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO orders(customer_email, status, total, items)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		o.CustomerEmail, string(o.Status), o.Total, items)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) Update(ctx context.Context, id int64, o Order) (Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}
	row := r.DB.QueryRow(ctx, `
		UPDATE orders SET customer_email=$2, status=$3, total=$4, items=$5
		WHERE id=$1
		RETURNING id, created_at`,
		id, o.CustomerEmail, string(o.Status), o.Total, items)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o     Order
		items []byte
	)
	if err := row.Scan(&o.ID, &o.CustomerEmail, &o.Status, &o.Total, &items, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, err
	}
	return o, nil
}
