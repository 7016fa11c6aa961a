package order

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetItemDetails(ctx context.Context, orderID string) ([]ItemDetail, error)
	ListAll(ctx context.Context, limit, offset int) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error)
	ListForRider(ctx context.Context, riderID string, limit, offset int) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, fromVersion int, newStatus Status, riderID *string) (*Order, error)
	History(ctx context.Context, orderID string) ([]StatusChange, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// mapNoRows swaps pgx.ErrNoRows for the given sentinel. Every other error
// (pool failure, context timeout) passes through untouched so handlers
// report it as a server error, not a domain miss.
func mapNoRows(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `
	id, order_number, customer_id, status, total_amount::text, assigned_rider_id,
	restaurant_name, restaurant_address, restaurant_lat, restaurant_lng,
	customer_name, customer_address, customer_lat, customer_lng,
	rider_earning::text, version, created_at`

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.TotalAmount, &o.AssignedRiderID,
		&o.RestaurantName, &o.RestaurantAddress, &o.RestaurantLat, &o.RestaurantLng,
		&o.CustomerName, &o.CustomerAddress, &o.CustomerLat, &o.CustomerLng,
		&o.RiderEarning, &o.Version, &o.CreatedAt)
}

// Create persists the order, its items and the initial history row in one
// transaction: a mid-failure never leaves a priced order without items.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, order_number, customer_id, status, total_amount, assigned_rider_id,
                        restaurant_name, restaurant_address, restaurant_lat, restaurant_lng,
                        customer_name, customer_address, customer_lat, customer_lng,
                        rider_earning, version, created_at)
    VALUES ($1,$2,$3,$4,$5,NULL,$6,$7,$8,$9,$10,$11,$12,$13,$14,1,NOW())
  `, o.ID, o.OrderNumber, o.CustomerID, o.Status, o.TotalAmount,
		o.RestaurantName, o.RestaurantAddress, o.RestaurantLat, o.RestaurantLng,
		o.CustomerName, o.CustomerAddress, o.CustomerLat, o.CustomerLng,
		o.RiderEarning); err != nil {
		if isUniqueViolation(err) {
			return errDuplicateNumber
		}
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, item_id, quantity, price_each, created_at)
      VALUES ($1,$2,$3,$4,$5,NOW())
    `, it.ID, o.ID, it.ItemID, it.Quantity, it.PriceEach); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO order_status_history (id, order_id, old_status, new_status, changed_at)
    VALUES ($1,$2,'',$3,NOW())
  `, uuid.NewString(), o.ID, o.Status); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	if err := scanOrder(r.db.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders WHERE id=$1`, id), &o); err != nil {
		return nil, mapNoRows(err, ErrNotFound)
	}
	return &o, nil
}

func (r *PGRepo) GetItemDetails(ctx context.Context, orderID string) ([]ItemDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT oi.item_id, COALESCE(m.name, 'Unknown Item'), oi.quantity, oi.price_each::text
    FROM order_items oi
    LEFT JOIN menu_items m ON m.id = oi.item_id
    WHERE oi.order_id = $1
    ORDER BY oi.created_at, oi.id
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemDetail
	for rows.Next() {
		var d ItemDetail
		if err := rows.Scan(&d.ItemID, &d.Name, &d.Quantity, &d.PriceEach); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *PGRepo) listQuery(ctx context.Context, where string, args []any, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit, offset = clampPage(limit, offset)
	args = append(args, limit, offset)
	n := len(args)
	rows, err := r.db.Query(ctx, `
    SELECT`+orderColumns+`
    FROM orders `+where+`
    ORDER BY created_at DESC LIMIT $`+strconv.Itoa(n-1)+` OFFSET $`+strconv.Itoa(n), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListAll(ctx context.Context, limit, offset int) ([]Order, error) {
	return r.listQuery(ctx, ``, nil, limit, offset)
}

func (r *PGRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error) {
	return r.listQuery(ctx, `WHERE customer_id=$1`, []any{customerID}, limit, offset)
}

// ListForRider returns orders assigned to the rider plus unclaimed ones
// (pending/ready), mirroring the read-side visibility predicate.
func (r *PGRepo) ListForRider(ctx context.Context, riderID string, limit, offset int) ([]Order, error) {
	return r.listQuery(ctx,
		`WHERE assigned_rider_id=$1 OR status IN ('pending','ready')`,
		[]any{riderID}, limit, offset)
}

// UpdateStatus writes the new status, bumps the version counter and appends
// the history row in one transaction. The WHERE version guard turns a lost
// race into ErrConflict instead of a silent last-writer-wins overwrite.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, fromVersion int, newStatus Status, riderID *string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var oldStatus Status
	if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&oldStatus); err != nil {
		return nil, mapNoRows(err, ErrNotFound)
	}

	var o Order
	err = scanOrder(tx.QueryRow(ctx, `
    UPDATE orders
    SET status = $2,
        assigned_rider_id = COALESCE($3, assigned_rider_id),
        version = version + 1
    WHERE id = $1 AND version = $4
    RETURNING`+orderColumns, id, newStatus, riderID, fromVersion), &o)
	if err != nil {
		// no row back means the version moved under us (the row itself was
		// just read); anything else is an infrastructure failure
		return nil, mapNoRows(err, ErrConflict)
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO order_status_history (id, order_id, old_status, new_status, changed_at)
    VALUES ($1,$2,$3,$4,NOW())
  `, uuid.NewString(), id, oldStatus, newStatus); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) History(ctx context.Context, orderID string) ([]StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, old_status, new_status, changed_at
    FROM order_status_history
    WHERE order_id = $1
    ORDER BY changed_at, id
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusChange
	for rows.Next() {
		var h StatusChange
		if err := rows.Scan(&h.ID, &h.OrderID, &h.OldStatus, &h.NewStatus, &h.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
