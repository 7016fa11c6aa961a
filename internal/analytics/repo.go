// Package analytics runs the read-only aggregate reports served under
// /admin/analytics. Pure aggregation SQL over orders, payments and the
// status history; no invariants of its own.
package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DayRevenue struct {
	Day     time.Time `json:"day"`
	Revenue string    `json:"revenue"`
}

type MonthRevenue struct {
	Month   time.Time `json:"month"`
	Revenue string    `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ItemSales struct {
	Name      string `json:"name"`
	TotalSold int    `json:"total_sold"`
}

type RiderDeliveries struct {
	Rider           string `json:"rider"`
	DeliveredOrders int    `json:"delivered_orders"`
}

type CustomerActivity struct {
	Name   string `json:"name"`
	Orders int    `json:"orders"`
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

func (r *PGRepo) TotalOrders(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *PGRepo) TotalRevenue(ctx context.Context) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)::text
		FROM orders WHERE status = 'delivered'
	`).Scan(&total)
	return total, err
}

func (r *PGRepo) DailyRevenue(ctx context.Context) ([]DayRevenue, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT DATE(created_at) AS day, SUM(total_amount)::text AS revenue
		FROM orders
		WHERE status = 'delivered'
		GROUP BY day
		ORDER BY day DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRevenue
	for rows.Next() {
		var d DayRevenue
		if err := rows.Scan(&d.Day, &d.Revenue); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepo) MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT DATE_TRUNC('month', created_at) AS month, SUM(total_amount)::text AS revenue
		FROM orders
		WHERE status = 'delivered'
		GROUP BY month
		ORDER BY month DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGRepo) TotalCustomers(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'customer'`).Scan(&n)
	return n, err
}

func (r *PGRepo) OrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*) FROM orders GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var s StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) TopItems(ctx context.Context) ([]ItemSales, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT mi.name, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN menu_items mi ON oi.item_id = mi.id
		GROUP BY mi.name
		ORDER BY total_sold DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemSales
	for rows.Next() {
		var s ItemSales
		if err := rows.Scan(&s.Name, &s.TotalSold); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) TopRiders(ctx context.Context) ([]RiderDeliveries, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT u.name AS rider, COUNT(*) AS delivered_orders
		FROM orders o
		JOIN users u ON o.assigned_rider_id = u.id
		WHERE o.status = 'delivered'
		GROUP BY rider
		ORDER BY delivered_orders DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RiderDeliveries
	for rows.Next() {
		var d RiderDeliveries
		if err := rows.Scan(&d.Rider, &d.DeliveredOrders); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepo) AvgOrderValue(ctx context.Context) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var avg string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(total_amount), 2), 0)::text FROM orders
	`).Scan(&avg)
	return avg, err
}

// AvgDeliveryTime measures ready → delivered from the status history, in
// seconds. Zero when no order has completed that leg yet.
func (r *PGRepo) AvgDeliveryTime(ctx context.Context) (float64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var seconds float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(EXTRACT(EPOCH FROM AVG(delivered.changed_at - ready.changed_at)), 0)
		FROM order_status_history ready
		JOIN order_status_history delivered
		  ON ready.order_id = delivered.order_id
		WHERE ready.new_status = 'ready'
		  AND delivered.new_status = 'delivered'
	`).Scan(&seconds)
	return seconds, err
}

func (r *PGRepo) OrdersPerCustomer(ctx context.Context) ([]CustomerActivity, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT u.name, COUNT(o.id) AS orders
		FROM users u
		LEFT JOIN orders o ON u.id = o.customer_id
		WHERE u.role = 'customer'
		GROUP BY u.name
		ORDER BY orders DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerActivity
	for rows.Next() {
		var c CustomerActivity
		if err := rows.Scan(&c.Name, &c.Orders); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) TopCategory(ctx context.Context) ([]ItemSales, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT c.name, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN menu_items mi ON oi.item_id = mi.id
		JOIN categories c ON mi.category_id = c.id
		GROUP BY c.name
		ORDER BY total_sold DESC
		LIMIT 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemSales
	for rows.Next() {
		var s ItemSales
		if err := rows.Scan(&s.Name, &s.TotalSold); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// PaymentSuccessRate reads the payments table; 1.0 when no payments are
// recorded (the gateway is out of scope, rows only appear via seeding).
func (r *PGRepo) PaymentSuccessRate(ctx context.Context) (float64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total, succeeded int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'succeeded')
		FROM payments
	`).Scan(&total, &succeeded)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 1.0, nil
	}
	return float64(succeeded) / float64(total), nil
}
