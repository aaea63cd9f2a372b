// This file manages crew members. Crew are assigned to trips through
// the trip_crew relation; the full name shown in trip listings is
// derived at read time from first and last name.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

// CrewRepo manages persistence for crew members.
type CrewRepo struct {
	db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// Create inserts a new crew member and assigns the generated ID and
// DB-default timestamps back to the struct.
func (r *CrewRepo) Create(ctx context.Context, cr *model.Crew) error {
	const q = `INSERT INTO crews (first_name, last_name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, cr.FirstName, cr.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cr.ID = uint64(id)
	const sel = `SELECT id, first_name, last_name, created_at, updated_at FROM crews WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, cr.ID).Scan(
		&cr.ID, &cr.FirstName, &cr.LastName, &cr.CreatedAt, &cr.UpdatedAt,
	)
}

// GetByID retrieves a crew member by ID. It returns ErrCrewNotFound
// when no matching row exists.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*model.Crew, error) {
	const q = `SELECT id, first_name, last_name, created_at, updated_at FROM crews WHERE id = ?`
	var cr model.Crew
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&cr.ID, &cr.FirstName, &cr.LastName, &cr.CreatedAt, &cr.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCrewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

// List returns all crew members ordered by ID, optionally filtered by
// a substring match on first or last name.
func (r *CrewRepo) List(ctx context.Context, search string) ([]model.Crew, error) {
	q := `SELECT id, first_name, last_name, created_at, updated_at FROM crews`
	args := []interface{}{}
	if search != "" {
		q += ` WHERE first_name LIKE ? OR last_name LIKE ?`
		pat := "%" + search + "%"
		args = append(args, pat, pat)
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Crew, 0)
	for rows.Next() {
		var cr model.Crew
		if err := rows.Scan(&cr.ID, &cr.FirstName, &cr.LastName, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

// Update overwrites first and last name for an existing crew member.
func (r *CrewRepo) Update(ctx context.Context, cr *model.Crew) error {
	const q = `UPDATE crews SET first_name = ?, last_name = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, cr.FirstName, cr.LastName, cr.ID); err != nil {
		return err
	}
	const sel = `SELECT id, first_name, last_name, created_at, updated_at FROM crews WHERE id = ?`
	err := r.db.QueryRowContext(ctx, sel, cr.ID).Scan(
		&cr.ID, &cr.FirstName, &cr.LastName, &cr.CreatedAt, &cr.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return ErrCrewNotFound
	}
	return err
}

// Delete removes a crew member. Their trip assignments are removed by
// the FK cascade; the trips themselves are untouched.
func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM crews WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCrewNotFound
	}
	return nil
}
