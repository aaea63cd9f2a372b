// This file manages stations: named points with coordinates that
// routes connect. Stations are plain reference data with substring
// search on the name.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

// StationRepo manages persistence for stations.
type StationRepo struct {
	db *sql.DB
}

// NewStationRepo constructs a StationRepo with the given DB handle.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// Create inserts a new station and assigns the generated ID and
// DB-default timestamps back to the struct.
func (r *StationRepo) Create(ctx context.Context, s *model.Station) error {
	const q = `INSERT INTO stations (name, latitude, longitude) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT id, name, latitude, longitude, created_at, updated_at FROM stations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt,
	)
}

// GetByID retrieves a station by its ID. It returns ErrStationNotFound
// when no matching row exists.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (*model.Station, error) {
	const q = `SELECT id, name, latitude, longitude, created_at, updated_at FROM stations WHERE id = ?`
	var s model.Station
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all stations ordered by ID, optionally filtered by a
// substring match on the name.
func (r *StationRepo) List(ctx context.Context, search string) ([]model.Station, error) {
	q := `SELECT id, name, latitude, longitude, created_at, updated_at FROM stations`
	args := []interface{}{}
	if search != "" {
		q += ` WHERE name LIKE ?`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Station, 0)
	for rows.Next() {
		var s model.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update overwrites name and coordinates for an existing station.
func (r *StationRepo) Update(ctx context.Context, s *model.Station) error {
	const q = `UPDATE stations SET name = ?, latitude = ?, longitude = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude, s.ID); err != nil {
		return err
	}
	const sel = `SELECT id, name, latitude, longitude, created_at, updated_at FROM stations WHERE id = ?`
	err := r.db.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return ErrStationNotFound
	}
	return err
}

// Delete removes a station. Routes touching it (and their trips and
// tickets) are removed by the FK cascade.
func (r *StationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM stations WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStationNotFound
	}
	return nil
}
