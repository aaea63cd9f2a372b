// This file manages trains. A train's total_seats column is a stored
// attribute derived from carriages_quantity and the referenced
// carriage type's seats_in_car. Every write path recomputes it inside
// the same transaction that persists the row, so ticket validation
// reads never have to join against carriage_types to learn capacity.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-ticket-reservation/internal/booking"
	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

// TrainRow is the list/detail projection of a train: the raw columns
// plus the carriage type category resolved for display.
type TrainRow struct {
	ID                uint64 `json:"id"`
	NameNumber        string `json:"name_number"`
	CarriagesQuantity uint32 `json:"carriages_quantity"`
	CarriageTypeID    uint64 `json:"carriage_type"`
	Category          string `json:"carriage_category"`
	TotalSeats        uint32 `json:"total_seats"`
}

// TrainRepo manages persistence for trains.
type TrainRepo struct {
	db *sql.DB
}

// NewTrainRepo constructs a TrainRepo with the given DB handle.
func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *TrainRepo) DB() *sql.DB { return r.db }

// seatsInCarTx resolves the seats_in_car of a carriage type inside the
// caller's transaction. Returns ErrCarriageTypeNotFound for unknown IDs.
func seatsInCarTx(ctx context.Context, tx *sql.Tx, carriageTypeID uint64) (uint32, error) {
	const q = `SELECT seats_in_car FROM carriage_types WHERE id = ?`
	var seats uint32
	err := tx.QueryRowContext(ctx, q, carriageTypeID).Scan(&seats)
	if err == sql.ErrNoRows {
		return 0, ErrCarriageTypeNotFound
	}
	if err != nil {
		return 0, err
	}
	return seats, nil
}

// Create inserts a new train. total_seats is computed from the carriage
// type inside the transaction; the caller-supplied TotalSeats value is
// ignored. The generated ID and stored capacity are written back.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	seats, err := seatsInCarTx(ctx, tx, t.CarriageTypeID)
	if err != nil {
		return err
	}
	t.TotalSeats = booking.TotalSeats(t.CarriagesQuantity, seats)
	const q = `INSERT INTO trains (name_number, carriages_quantity, carriage_type_id, total_seats) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.NameNumber, t.CarriagesQuantity, t.CarriageTypeID, t.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT id, name_number, carriages_quantity, carriage_type_id, total_seats, created_at, updated_at FROM trains WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, t.ID).Scan(
		&t.ID, &t.NameNumber, &t.CarriagesQuantity, &t.CarriageTypeID, &t.TotalSeats, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update overwrites a train's fields and recomputes total_seats, even
// when only the name changed, so the stored product can never drift
// from carriages_quantity × seats_in_car.
func (r *TrainRepo) Update(ctx context.Context, t *model.Train) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	seats, err := seatsInCarTx(ctx, tx, t.CarriageTypeID)
	if err != nil {
		return err
	}
	t.TotalSeats = booking.TotalSeats(t.CarriagesQuantity, seats)
	const q = `UPDATE trains SET name_number = ?, carriages_quantity = ?, carriage_type_id = ?, total_seats = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, t.NameNumber, t.CarriagesQuantity, t.CarriageTypeID, t.TotalSeats, t.ID); err != nil {
		return err
	}
	const sel = `SELECT id, name_number, carriages_quantity, carriage_type_id, total_seats, created_at, updated_at FROM trains WHERE id = ?`
	err = tx.QueryRowContext(ctx, sel, t.ID).Scan(
		&t.ID, &t.NameNumber, &t.CarriagesQuantity, &t.CarriageTypeID, &t.TotalSeats, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return ErrTrainNotFound
	}
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID retrieves a train with its carriage type category resolved.
// It returns ErrTrainNotFound when no matching row exists.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (*TrainRow, error) {
	const q = `SELECT t.id, t.name_number, t.carriages_quantity, t.carriage_type_id, ct.category, t.total_seats
	           FROM trains t
	           JOIN carriage_types ct ON ct.id = t.carriage_type_id
	           WHERE t.id = ?`
	var row TrainRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.NameNumber, &row.CarriagesQuantity, &row.CarriageTypeID, &row.Category, &row.TotalSeats,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTrainNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns all trains ordered by ID, optionally filtered by a
// substring match on name_number.
func (r *TrainRepo) List(ctx context.Context, search string) ([]TrainRow, error) {
	q := `SELECT t.id, t.name_number, t.carriages_quantity, t.carriage_type_id, ct.category, t.total_seats
	      FROM trains t
	      JOIN carriage_types ct ON ct.id = t.carriage_type_id`
	args := []interface{}{}
	if search != "" {
		q += ` WHERE t.name_number LIKE ?`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TrainRow, 0)
	for rows.Next() {
		var row TrainRow
		if err := rows.Scan(&row.ID, &row.NameNumber, &row.CarriagesQuantity, &row.CarriageTypeID, &row.Category, &row.TotalSeats); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete removes a train; trips scheduled on it (and their tickets)
// are removed by the FK cascade.
func (r *TrainRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM trains WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTrainNotFound
	}
	return nil
}
