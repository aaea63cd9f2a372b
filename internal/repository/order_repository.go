// This file provides CRUD operations for orders and their tickets.
// An order groups together one or more tickets created in a single
// transaction for one user. Tickets reserve concrete seats on trips;
// the tickets table carries a unique key on (trip_id, car_num,
// seat_num) that the insert path maps onto ErrSeatTaken. All
// timestamp fields are stored in UTC.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

// OrderRepo provides persistence for orders and tickets.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying sql.DB for callers that open the booking
// transaction themselves.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// OrderScope is the authorization predicate applied before any order
// read. It is computed once per request from the caller's identity and
// role by NewOrderScope and then drives the WHERE clause of every
// query, so no code path can return another customer's order.
type OrderScope struct {
	UserID     uint64 // caller identity
	Staff      bool   // staff see all orders
	UserFilter string // optional owner-email substring, staff only
}

// NewOrderScope builds the scope for a caller. Non-staff callers are
// always restricted to their own orders and their user filter is
// discarded rather than applied.
func NewOrderScope(userID uint64, isStaff bool, userFilter string) OrderScope {
	s := OrderScope{UserID: userID, Staff: isStaff}
	if isStaff {
		s.UserFilter = strings.TrimSpace(userFilter)
	}
	return s
}

// TicketContext is a ticket annotated with the resolved trip and train
// information for response purposes.
type TicketContext struct {
	ID            uint64    `json:"id"`
	CarNum        uint32    `json:"car_num"`
	SeatNum       uint32    `json:"seat_num"`
	TripID        uint64    `json:"trip"`
	FromStation   string    `json:"from_station"`
	ToStation     string    `json:"to_station"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Train         string    `json:"train"`
}

// OrderDetail is an order with its owner's email and all tickets
// resolved. It is the shape returned to both customers and staff.
type OrderDetail struct {
	ID        uint64          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by"`
	UserID    uint64          `json:"-"`
	Tickets   []TicketContext `json:"tickets"`
}

// CreateTx inserts a new order within the scope of an existing
// transaction and populates the generated ID and created_at on the
// provided record. The caller must commit or roll back.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `INSERT INTO orders (user_id) VALUES (?)`
	res, err := tx.ExecContext(ctx, q, o.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	const sel = `SELECT id, user_id, created_at FROM orders WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, o.ID).Scan(&o.ID, &o.UserID, &o.CreatedAt)
}

// CreateTicketsBulkTx inserts all tickets of an order in a single
// statement within the provided transaction. A duplicate-key error
// from the unique seat index is mapped onto ErrSeatTaken, and so is a
// deadlock rollback: when two transactions race for the same free
// triple their FOR UPDATE gap locks are compatible, and the losing
// insert may surface as errno 1213 rather than 1062. Either way the
// caller rolls back and the whole order is discarded, so an order can
// never be persisted with only part of its tickets.
func (r *OrderRepo) CreateTicketsBulkTx(ctx context.Context, tx *sql.Tx, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	query := `INSERT INTO tickets (car_num, seat_num, trip_id, order_id) VALUES `
	args := make([]interface{}, 0, len(tickets)*4)
	for i, t := range tickets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, t.CarNum, t.SeatNum, t.TripID, t.OrderID)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) || isDeadlock(err) {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

// GetByID returns a single order visible under the given scope. A
// non-staff caller asking for someone else's order receives
// ErrOrderNotFound, the same as for an order that does not exist, so
// nothing about other users' orders leaks.
func (r *OrderRepo) GetByID(ctx context.Context, scope OrderScope, orderID uint64) (*OrderDetail, error) {
	q := `SELECT o.id, o.user_id, o.created_at, u.email
	      FROM orders o
	      JOIN users u ON u.id = o.user_id
	      WHERE o.id = ?`
	args := []interface{}{orderID}
	if !scope.Staff {
		q += ` AND o.user_id = ?`
		args = append(args, scope.UserID)
	}
	var det OrderDetail
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&det.ID, &det.UserID, &det.CreatedAt, &det.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	det.Tickets = []TicketContext{}
	byOrder := map[uint64]*OrderDetail{det.ID: &det}
	if err := r.loadTickets(ctx, byOrder, []interface{}{det.ID}); err != nil {
		return nil, err
	}
	return &det, nil
}

// List returns all orders visible under the given scope, newest first,
// each with its tickets resolved. Staff may narrow the result with the
// scope's owner-email substring filter.
func (r *OrderRepo) List(ctx context.Context, scope OrderScope) ([]OrderDetail, error) {
	q := `SELECT o.id, o.user_id, o.created_at, u.email
	      FROM orders o
	      JOIN users u ON u.id = o.user_id`
	conds := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if !scope.Staff {
		conds = append(conds, `o.user_id = ?`)
		args = append(args, scope.UserID)
	} else if scope.UserFilter != "" {
		conds = append(conds, `u.email LIKE ?`)
		args = append(args, "%"+scope.UserFilter+"%")
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]OrderDetail, 0)
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.CreatedAt, &d.CreatedBy); err != nil {
			return nil, err
		}
		d.Tickets = []TicketContext{}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	byOrder := make(map[uint64]*OrderDetail, len(details))
	ids := make([]interface{}, 0, len(details))
	for i := range details {
		byOrder[details[i].ID] = &details[i]
		ids = append(ids, details[i].ID)
	}
	if err := r.loadTickets(ctx, byOrder, ids); err != nil {
		return nil, err
	}
	return details, nil
}

// Delete removes an order visible under the given scope; its tickets
// are removed by the FK cascade, which frees the seats.
func (r *OrderRepo) Delete(ctx context.Context, scope OrderScope, orderID uint64) error {
	q := `DELETE FROM orders WHERE id = ?`
	args := []interface{}{orderID}
	if !scope.Staff {
		q += ` AND user_id = ?`
		args = append(args, scope.UserID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// loadTickets populates the tickets of all orders in byOrder with one
// query, resolving trip, station and train context for each ticket.
func (r *OrderRepo) loadTickets(ctx context.Context, byOrder map[uint64]*OrderDetail, ids []interface{}) error {
	placeholders := make([]string, len(ids))
	for i := range ids {
		placeholders[i] = "?"
	}
	q := `SELECT tk.order_id, tk.id, tk.car_num, tk.seat_num, tk.trip_id,
	             ss.name, ds.name, t.departure_time, t.arrival_time, tr.name_number
	      FROM tickets tk
	      JOIN trips t ON t.id = tk.trip_id
	      JOIN routes r ON r.id = t.route_id
	      JOIN stations ss ON ss.id = r.source_station_id
	      JOIN stations ds ON ds.id = r.destination_station_id
	      JOIN trains tr ON tr.id = t.train_id
	      WHERE tk.order_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY tk.order_id, tk.id`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var orderID uint64
		var tc TicketContext
		if err := rows.Scan(
			&orderID, &tc.ID, &tc.CarNum, &tc.SeatNum, &tc.TripID,
			&tc.FromStation, &tc.ToStation, &tc.DepartureTime, &tc.ArrivalTime, &tc.Train,
		); err != nil {
			return err
		}
		if det, ok := byOrder[orderID]; ok {
			det.Tickets = append(det.Tickets, tc)
		}
	}
	return rows.Err()
}
