// This file manages routes: ordered pairs of stations with a
// distance. List queries resolve station names for display and
// support the comma-separated substring filters of the search API
// (city matches either endpoint, source/destination one endpoint).
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

// RouteRow is the list/detail projection of a route with both station
// names resolved.
type RouteRow struct {
	ID          uint64 `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    uint32 `json:"distance"`
}

// RouteFilter carries the optional list filters. Each field accepts a
// comma-separated list of values matched as case-insensitive
// substrings against station names; City matches source or
// destination.
type RouteFilter struct {
	City        string
	Source      string
	Destination string
}

// RouteRepo manages persistence for routes.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// Create inserts a new route. Station references are validated by the
// foreign keys; a missing station surfaces as ErrStationNotFound.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	const q = `INSERT INTO routes (source_station_id, destination_station_id, distance) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.SourceStationID, rt.DestinationStationID, rt.Distance)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrStationNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	const sel = `SELECT id, source_station_id, destination_station_id, distance, created_at, updated_at FROM routes WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, rt.ID).Scan(
		&rt.ID, &rt.SourceStationID, &rt.DestinationStationID, &rt.Distance, &rt.CreatedAt, &rt.UpdatedAt,
	)
}

// GetByID retrieves a route with station names resolved. It returns
// ErrRouteNotFound when no matching row exists.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*RouteRow, error) {
	const q = `SELECT r.id, ss.name, ds.name, r.distance
	           FROM routes r
	           JOIN stations ss ON ss.id = r.source_station_id
	           JOIN stations ds ON ds.id = r.destination_station_id
	           WHERE r.id = ?`
	var row RouteRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(&row.ID, &row.Source, &row.Destination, &row.Distance)
	if err == sql.ErrNoRows {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns routes with station names resolved, restricted by the
// optional filters. Filters combine with AND; the comma-separated
// values within one filter combine with OR.
func (r *RouteRepo) List(ctx context.Context, f RouteFilter) ([]RouteRow, error) {
	q := `SELECT r.id, ss.name, ds.name, r.distance
	      FROM routes r
	      JOIN stations ss ON ss.id = r.source_station_id
	      JOIN stations ds ON ds.id = r.destination_station_id`
	conds := make([]string, 0, 3)
	args := make([]interface{}, 0, 6)
	if c, a := substringAnyCond(f.City, "ss.name", "ds.name"); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if c, a := substringAnyCond(f.Source, "ss.name"); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if c, a := substringAnyCond(f.Destination, "ds.name"); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RouteRow, 0)
	for rows.Next() {
		var row RouteRow
		if err := rows.Scan(&row.ID, &row.Source, &row.Destination, &row.Distance); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Update overwrites the endpoints and distance of an existing route.
func (r *RouteRepo) Update(ctx context.Context, rt *model.Route) error {
	const q = `UPDATE routes SET source_station_id = ?, destination_station_id = ?, distance = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, rt.SourceStationID, rt.DestinationStationID, rt.Distance, rt.ID); err != nil {
		if isForeignKeyViolation(err) {
			return ErrStationNotFound
		}
		return err
	}
	const sel = `SELECT id, source_station_id, destination_station_id, distance, created_at, updated_at FROM routes WHERE id = ?`
	err := r.db.QueryRowContext(ctx, sel, rt.ID).Scan(
		&rt.ID, &rt.SourceStationID, &rt.DestinationStationID, &rt.Distance, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return ErrRouteNotFound
	}
	return err
}

// Delete removes a route. Trips scheduled on it (and their tickets)
// are removed by the FK cascade.
func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM routes WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRouteNotFound
	}
	return nil
}

// substringAnyCond builds an OR group of LIKE conditions matching any
// of the comma-separated values in raw against any of the given
// columns. It returns an empty condition when raw is blank.
func substringAnyCond(raw string, cols ...string) (string, []interface{}) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parts := make([]string, 0)
	args := make([]interface{}, 0)
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		for _, col := range cols {
			parts = append(parts, col+" LIKE ?")
			args = append(args, "%"+v+"%")
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// isForeignKeyViolation reports whether err is a MySQL foreign key
// failure (errno 1452), raised when an INSERT or UPDATE references a
// row that does not exist.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
