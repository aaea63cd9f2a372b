// This file manages trips and their crew assignments. A trip binds a
// route, a train and a crew set to a departure/arrival window. List
// and detail queries derive seat availability from live ticket counts
// in the same SELECT, so the booked/available pair always reflects one
// snapshot. The ...Tx helpers at the bottom are the read side of the
// booking transaction: capacity resolution and the locked seat check.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/train-ticket-reservation/internal/booking"
	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

// TripListRow is the list projection of a trip: station names, train
// name and the number of seats still available.
type TripListRow struct {
	ID             uint64    `json:"id"`
	FromStation    string    `json:"from_station"`
	DepartureTime  time.Time `json:"departure_time"`
	ToStation      string    `json:"to_station"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Train          string    `json:"train"`
	SeatsAvailable uint32    `json:"seats_available"`
}

// TripDetail is the detail projection: full route, crew full names and
// the availability snapshot.
type TripDetail struct {
	ID            uint64               `json:"id"`
	Route         RouteRow             `json:"route"`
	DepartureTime time.Time            `json:"departure_time"`
	ArrivalTime   time.Time            `json:"arrival_time"`
	Train         string               `json:"train"`
	Crew          []string             `json:"crew"`
	Availability  booking.Availability `json:"availability"`
}

// TripFilter carries the optional list filters. Each field accepts a
// comma-separated list; string fields match as substrings against the
// joined names, date fields match the calendar date (YYYY-MM-DD) of
// the corresponding timestamp. Date matches either endpoint of the
// window.
type TripFilter struct {
	City        string
	Source      string
	Destination string
	Train       string
	Crew        string
	Date        string
	Dep         string
	Arr         string
}

// TripRepo manages persistence for trips and the trip_crew relation.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo constructs a TripRepo with the given DB handle.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

// DB exposes the underlying sql.DB. The order handler uses it to open
// the booking transaction that spans trip reads and ticket inserts.
func (r *TripRepo) DB() *sql.DB { return r.db }

// Create inserts a trip and its crew assignments in one transaction.
// Route, train and crew references are verified inside the transaction
// so a dangling ID surfaces as the matching not-found sentinel rather
// than a driver error.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip, crewIDs []uint64) error {
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
	if err := checkExistsTx(ctx, tx, `SELECT 1 FROM routes WHERE id = ?`, t.RouteID, ErrRouteNotFound); err != nil {
		return err
	}
	if err := checkExistsTx(ctx, tx, `SELECT 1 FROM trains WHERE id = ?`, t.TrainID, ErrTrainNotFound); err != nil {
		return err
	}
	const q = `INSERT INTO trips (route_id, train_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.RouteID, t.TrainID, t.DepartureTime.UTC(), t.ArrivalTime.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	if err := setCrewTx(ctx, tx, t.ID, crewIDs); err != nil {
		return err
	}
	const sel = `SELECT id, route_id, train_id, departure_time, arrival_time, created_at, updated_at FROM trips WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, t.ID).Scan(
		&t.ID, &t.RouteID, &t.TrainID, &t.DepartureTime, &t.ArrivalTime, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update overwrites a trip and replaces its crew set in one
// transaction.
func (r *TripRepo) Update(ctx context.Context, t *model.Trip, crewIDs []uint64) error {
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
	if err := checkExistsTx(ctx, tx, `SELECT 1 FROM trips WHERE id = ?`, t.ID, ErrTripNotFound); err != nil {
		return err
	}
	if err := checkExistsTx(ctx, tx, `SELECT 1 FROM routes WHERE id = ?`, t.RouteID, ErrRouteNotFound); err != nil {
		return err
	}
	if err := checkExistsTx(ctx, tx, `SELECT 1 FROM trains WHERE id = ?`, t.TrainID, ErrTrainNotFound); err != nil {
		return err
	}
	const q = `UPDATE trips SET route_id = ?, train_id = ?, departure_time = ?, arrival_time = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, t.RouteID, t.TrainID, t.DepartureTime.UTC(), t.ArrivalTime.UTC(), t.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_crew WHERE trip_id = ?`, t.ID); err != nil {
		return err
	}
	if err := setCrewTx(ctx, tx, t.ID, crewIDs); err != nil {
		return err
	}
	const sel = `SELECT id, route_id, train_id, departure_time, arrival_time, created_at, updated_at FROM trips WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, t.ID).Scan(
		&t.ID, &t.RouteID, &t.TrainID, &t.DepartureTime, &t.ArrivalTime, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a trip; its tickets and crew assignments are removed
// by the FK cascade.
func (r *TripRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM trips WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTripNotFound
	}
	return nil
}

// List returns trips matching the filter, each annotated with
// seats_available derived from train.total_seats and the live ticket
// count. Both come from one SELECT, so the annotation is a consistent
// snapshot per row.
func (r *TripRepo) List(ctx context.Context, f TripFilter) ([]TripListRow, error) {
	q := `SELECT t.id, ss.name, t.departure_time, ds.name, t.arrival_time, tr.name_number,
	             tr.total_seats, COUNT(tk.id)
	      FROM trips t
	      JOIN routes r ON r.id = t.route_id
	      JOIN stations ss ON ss.id = r.source_station_id
	      JOIN stations ds ON ds.id = r.destination_station_id
	      JOIN trains tr ON tr.id = t.train_id
	      LEFT JOIN tickets tk ON tk.trip_id = t.id`
	conds := make([]string, 0, 6)
	args := make([]interface{}, 0, 12)
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
	if c, a := substringAnyCond(f.Train, "tr.name_number"); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if c, a := crewNameCond(f.Crew); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if c, a := dateAnyCond(f.Date, "DATE(t.departure_time)", "DATE(t.arrival_time)"); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if c, a := dateAnyCond(f.Dep, "DATE(t.departure_time)"); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if c, a := dateAnyCond(f.Arr, "DATE(t.arrival_time)"); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` GROUP BY t.id, ss.name, t.departure_time, ds.name, t.arrival_time, tr.name_number, tr.total_seats
	       ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TripListRow, 0)
	for rows.Next() {
		var row TripListRow
		var totalSeats, booked uint32
		if err := rows.Scan(&row.ID, &row.FromStation, &row.DepartureTime, &row.ToStation, &row.ArrivalTime, &row.Train, &totalSeats, &booked); err != nil {
			return nil, err
		}
		// Shrinking a train below its booked count must not break the
		// list; the availability clamp bottoms out at zero.
		row.SeatsAvailable = booking.NewAvailability(totalSeats, booked).SeatsAvailable
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetDetail returns a single trip with its route, crew full names and
// availability snapshot. Capacity and the booked count come from the
// same SELECT, so seats_available + seats_booked always equals
// total_seats_capacity within one response.
func (r *TripRepo) GetDetail(ctx context.Context, id uint64) (*TripDetail, error) {
	const q = `SELECT t.id, r.id, ss.name, ds.name, r.distance,
	                  t.departure_time, t.arrival_time, tr.name_number,
	                  tr.total_seats, COUNT(tk.id)
	           FROM trips t
	           JOIN routes r ON r.id = t.route_id
	           JOIN stations ss ON ss.id = r.source_station_id
	           JOIN stations ds ON ds.id = r.destination_station_id
	           JOIN trains tr ON tr.id = t.train_id
	           LEFT JOIN tickets tk ON tk.trip_id = t.id
	           WHERE t.id = ?
	           GROUP BY t.id, r.id, ss.name, ds.name, r.distance, t.departure_time, t.arrival_time, tr.name_number, tr.total_seats`
	var det TripDetail
	var totalSeats, booked uint32
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.Route.ID, &det.Route.Source, &det.Route.Destination, &det.Route.Distance,
		&det.DepartureTime, &det.ArrivalTime, &det.Train,
		&totalSeats, &booked,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	det.Availability = booking.NewAvailability(totalSeats, booked)
	det.Crew, err = r.crewNames(ctx, id)
	if err != nil {
		return nil, err
	}
	return &det, nil
}

// crewNames returns the full names of the crew assigned to a trip,
// ordered for deterministic output.
func (r *TripRepo) crewNames(ctx context.Context, tripID uint64) ([]string, error) {
	const q = `SELECT c.first_name, c.last_name
	           FROM trip_crew tc
	           JOIN crews c ON c.id = tc.crew_id
	           WHERE tc.trip_id = ?
	           ORDER BY c.last_name, c.first_name`
	rows, err := r.db.QueryContext(ctx, q, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var first, last string
		if err := rows.Scan(&first, &last); err != nil {
			return nil, err
		}
		names = append(names, first+" "+last)
	}
	return names, rows.Err()
}

// SeatPlanTx resolves the capacity of the train serving a trip inside
// the booking transaction: trip -> train -> carriage type in a single
// join. Returns ErrTripNotFound for unknown trips.
func (r *TripRepo) SeatPlanTx(ctx context.Context, tx *sql.Tx, tripID uint64) (booking.SeatPlan, error) {
	const q = `SELECT tr.carriages_quantity, ct.seats_in_car
	           FROM trips t
	           JOIN trains tr ON tr.id = t.train_id
	           JOIN carriage_types ct ON ct.id = tr.carriage_type_id
	           WHERE t.id = ?`
	var plan booking.SeatPlan
	err := tx.QueryRowContext(ctx, q, tripID).Scan(&plan.CarriagesQuantity, &plan.SeatsInCar)
	if err == sql.ErrNoRows {
		return booking.SeatPlan{}, ErrTripNotFound
	}
	if err != nil {
		return booking.SeatPlan{}, err
	}
	return plan, nil
}

// SeatTakenTx reports whether a ticket already occupies the given seat
// triple. FOR UPDATE locks the matching index range so two concurrent
// bookings of the same triple serialize here; the unique key on
// tickets remains the final arbiter for the insert itself.
func (r *TripRepo) SeatTakenTx(ctx context.Context, tx *sql.Tx, tripID uint64, carNum, seatNum uint32) (bool, error) {
	const q = `SELECT id FROM tickets WHERE trip_id = ? AND car_num = ? AND seat_num = ? FOR UPDATE`
	var id uint64
	err := tx.QueryRowContext(ctx, q, tripID, carNum, seatNum).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// setCrewTx inserts trip_crew rows for the given crew IDs within the
// provided transaction. Passing an empty slice has no effect. A
// dangling crew ID surfaces as ErrCrewNotFound via the FK check.
func setCrewTx(ctx context.Context, tx *sql.Tx, tripID uint64, crewIDs []uint64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	query := `INSERT INTO trip_crew (trip_id, crew_id) VALUES `
	args := make([]interface{}, 0, len(crewIDs)*2)
	for i, cid := range crewIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, tripID, cid)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return ErrCrewNotFound
		}
		return err
	}
	return nil
}

// checkExistsTx runs a single-row existence query and maps a missing
// row onto the provided sentinel.
func checkExistsTx(ctx context.Context, tx *sql.Tx, q string, id uint64, missing error) error {
	var one int
	err := tx.QueryRowContext(ctx, q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return missing
	}
	return err
}

// crewNameCond builds an EXISTS condition matching trips whose crew
// contains a member whose first or last name matches any of the
// comma-separated values.
func crewNameCond(raw string) (string, []interface{}) {
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
		parts = append(parts, "c.first_name LIKE ? OR c.last_name LIKE ?")
		args = append(args, "%"+v+"%", "%"+v+"%")
	}
	if len(parts) == 0 {
		return "", nil
	}
	cond := `EXISTS (SELECT 1 FROM trip_crew tc JOIN crews c ON c.id = tc.crew_id
	         WHERE tc.trip_id = t.id AND (` + strings.Join(parts, " OR ") + `))`
	return cond, args
}

// dateAnyCond builds an OR group of date equality conditions for the
// comma-separated YYYY-MM-DD values in raw. Values that fail to parse
// are skipped rather than failing the whole query.
func dateAnyCond(raw string, cols ...string) (string, []interface{}) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parts := make([]string, 0)
	args := make([]interface{}, 0)
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if _, err := time.Parse("2006-01-02", v); err != nil {
			continue
		}
		for _, col := range cols {
			parts = append(parts, col+" = ?")
			args = append(args, v)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
