// Package repository contains data access logic for the train catalog.
// This file manages carriage types: the classes of railway car that
// determine how many seats a train car holds. Carriage types are
// reference data; edits are allowed but trains referencing a type keep
// their stored total_seats until their next write.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

// CarriageTypeRepo manages persistence for carriage types.
type CarriageTypeRepo struct {
	db *sql.DB
}

// NewCarriageTypeRepo constructs a CarriageTypeRepo with the given DB handle.
func NewCarriageTypeRepo(db *sql.DB) *CarriageTypeRepo { return &CarriageTypeRepo{db: db} }

// Create inserts a new carriage type and assigns the generated ID and
// DB-default timestamps back to the struct.
func (r *CarriageTypeRepo) Create(ctx context.Context, ct *model.CarriageType) error {
	const q = `INSERT INTO carriage_types (category, seats_in_car) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, ct.Category, ct.SeatsInCar)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ct.ID = uint64(id)
	const sel = `SELECT id, category, seats_in_car, created_at, updated_at FROM carriage_types WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, ct.ID).Scan(
		&ct.ID, &ct.Category, &ct.SeatsInCar, &ct.CreatedAt, &ct.UpdatedAt,
	)
}

// GetByID retrieves a carriage type by its ID. It returns
// ErrCarriageTypeNotFound when no matching row exists.
func (r *CarriageTypeRepo) GetByID(ctx context.Context, id uint64) (*model.CarriageType, error) {
	const q = `SELECT id, category, seats_in_car, created_at, updated_at FROM carriage_types WHERE id = ?`
	var ct model.CarriageType
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&ct.ID, &ct.Category, &ct.SeatsInCar, &ct.CreatedAt, &ct.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCarriageTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// List returns all carriage types ordered by ID. When search is not
// empty, rows are filtered by a case-insensitive substring match on
// the category or on the seat count rendered as text, mirroring the
// catalog search behaviour of the admin API.
func (r *CarriageTypeRepo) List(ctx context.Context, search string) ([]model.CarriageType, error) {
	q := `SELECT id, category, seats_in_car, created_at, updated_at FROM carriage_types`
	args := []interface{}{}
	if search != "" {
		q += ` WHERE category LIKE ? OR CAST(seats_in_car AS CHAR) LIKE ?`
		pat := "%" + search + "%"
		args = append(args, pat, pat)
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.CarriageType, 0)
	for rows.Next() {
		var ct model.CarriageType
		if err := rows.Scan(&ct.ID, &ct.Category, &ct.SeatsInCar, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// Update overwrites category and seats_in_car for an existing carriage
// type. It returns ErrCarriageTypeNotFound when the row does not exist.
func (r *CarriageTypeRepo) Update(ctx context.Context, ct *model.CarriageType) error {
	const q = `UPDATE carriage_types SET category = ?, seats_in_car = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, ct.Category, ct.SeatsInCar, ct.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// The UPDATE may also report zero rows when values are unchanged;
		// verify existence before reporting not-found.
		if _, err := r.GetByID(ctx, ct.ID); err != nil {
			return err
		}
	}
	const sel = `SELECT id, category, seats_in_car, created_at, updated_at FROM carriage_types WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, ct.ID).Scan(
		&ct.ID, &ct.Category, &ct.SeatsInCar, &ct.CreatedAt, &ct.UpdatedAt,
	)
}

// Delete removes a carriage type. Trains referencing it are removed by
// the FK cascade, which in turn cascades to their trips and tickets.
func (r *CarriageTypeRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM carriage_types WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCarriageTypeNotFound
	}
	return nil
}
