// Command seed bootstraps the database schema and inserts development data:
// the three demo accounts, the starter menu, and optionally a batch of
// synthetic historical orders for exercising the analytics endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/mominahmadrao/SmartResturantSystem/internal/config"
)

type seededUser struct {
	id, name, email, password, role, phone string
}

var demoUsers = []seededUser{
	{name: "Admin User", email: "admin@example.com", password: "admin123", role: "admin", phone: "0000000000"},
	{name: "Rider User", email: "rider@example.com", password: "rider123", role: "rider", phone: "1111111111"},
	{name: "Customer User", email: "customer@example.com", password: "customer123", role: "customer", phone: "2222222222"},
}

type seededItem struct {
	name, description, price, category string
}

var demoMenu = []seededItem{
	{"Cheese Burger", "Classic juicy cheese burger", "500.00", "Burgers"},
	{"Zinger Burger", "Crispy chicken zinger with spice", "650.00", "Burgers"},
	{"Chicken Pizza", "12-inch chicken pizza with cheese", "1200.00", "Pizza"},
	{"Veggie Pizza", "12-inch pizza loaded with vegetables", "1000.00", "Pizza"},
	{"Cola Drink", "Chilled cola drink", "80.00", "Drinks"},
	{"Mineral Water", "500ml bottled water", "50.00", "Drinks"},
}

func main() {
	var (
		schemaPath = flag.String("schema", "schema.sql", "path to the schema file to apply")
		reset      = flag.Bool("reset", false, "drop all tables before applying the schema")
		orders     = flag.Int("orders", 0, "number of synthetic historical orders to insert")
	)
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	if *reset {
		if _, err := pool.Exec(ctx, `
			DROP TABLE IF EXISTS payments, order_status_history, order_items, orders,
			                     rider_profiles, menu_items, categories, users CASCADE
		`); err != nil {
			log.Fatalf("reset: %v", err)
		}
		log.Printf("[seed] dropped existing tables")
	}

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	log.Printf("[seed] schema applied")

	if err := seedUsers(ctx, pool); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := seedMenu(ctx, pool); err != nil {
		log.Fatalf("seed menu: %v", err)
	}
	if *orders > 0 {
		if err := seedOrders(ctx, pool, *orders); err != nil {
			log.Fatalf("seed orders: %v", err)
		}
	}

	if err := printSummary(ctx, pool); err != nil {
		log.Fatalf("summary: %v", err)
	}
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	for i := range demoUsers {
		u := &demoUsers[i]
		u.id = uuid.NewString()
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		tag, err := pool.Exec(ctx, `
			INSERT INTO users (id, name, email, phone, password_hash, role)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (email) DO NOTHING
		`, u.id, u.name, u.email, u.phone, string(hash), u.role)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// keep the existing id so dependent seeds still line up
			if err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email=$1`, u.email).Scan(&u.id); err != nil {
				return err
			}
			continue
		}
		if u.role == "rider" {
			if _, err := pool.Exec(ctx, `
				INSERT INTO rider_profiles (id, user_id, full_name, phone_number, vehicle_details, rating)
				VALUES ($1,$2,$3,$4,$5,5.0)
				ON CONFLICT (user_id) DO NOTHING
			`, uuid.NewString(), u.id, u.name, u.phone, "Honda CD 70 - Red"); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedMenu(ctx context.Context, pool *pgxpool.Pool) error {
	catIDs := map[string]string{}
	for _, it := range demoMenu {
		if _, ok := catIDs[it.category]; ok {
			continue
		}
		id := uuid.NewString()
		if _, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name) VALUES ($1,$2)
			ON CONFLICT (name) DO NOTHING
		`, id, it.category); err != nil {
			return err
		}
		if err := pool.QueryRow(ctx, `SELECT id FROM categories WHERE name=$1`, it.category).Scan(&id); err != nil {
			return err
		}
		catIDs[it.category] = id
	}
	for _, it := range demoMenu {
		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM menu_items WHERE name=$1)`, it.name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO menu_items (id, name, description, price, category_id, available)
			VALUES ($1,$2,$3,$4,$5,TRUE)
		`, uuid.NewString(), it.name, it.description, it.price, catIDs[it.category]); err != nil {
			return err
		}
	}
	return nil
}

// seedOrders inserts delivered historical orders with plausible
// ready→delivered history gaps so avg-delivery-time has data to average.
func seedOrders(ctx context.Context, pool *pgxpool.Pool, n int) error {
	customerID := demoUsers[2].id
	riderID := demoUsers[1].id

	type menuRow struct{ id, price string }
	rows, err := pool.Query(ctx, `SELECT id, price::text FROM menu_items`)
	if err != nil {
		return err
	}
	var items []menuRow
	for rows.Next() {
		var m menuRow
		if err := rows.Scan(&m.id, &m.price); err != nil {
			rows.Close()
			return err
		}
		items = append(items, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no menu items to order")
	}

	rnd := rand.New(rand.NewSource(42))
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		orderID := uuid.NewString()
		created := now.Add(-time.Duration(rnd.Intn(60*24)) * time.Hour)
		it := items[rnd.Intn(len(items))]
		qty := 1 + rnd.Intn(3)

		if _, err := pool.Exec(ctx, `
			INSERT INTO orders (id, order_number, customer_id, status, total_amount, assigned_rider_id,
			                    restaurant_name, restaurant_address, restaurant_lat, restaurant_lng,
			                    customer_name, customer_address, customer_lat, customer_lng,
			                    rider_earning, version, created_at)
			VALUES ($1,$2,$3,'delivered',$4::numeric*$5,$6,
			        'Smart Restaurant HQ','123 Food Street, Downtown',31.5204,74.3587,
			        $7,'Customer Location 123',31.53,74.36,
			        $4::numeric*$5*0.10,4,$8)
		`, orderID, fmt.Sprintf("ORD_%s_%03d", created.Format("20060102"), i+1),
			customerID, it.price, qty, riderID, demoUsers[2].name, created); err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO order_items (id, order_id, item_id, quantity, price_each, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, uuid.NewString(), orderID, it.id, qty, it.price, created); err != nil {
			return err
		}

		steps := []struct {
			old, new string
			offset   time.Duration
		}{
			{"", "pending", 0},
			{"pending", "assigned", 5 * time.Minute},
			{"assigned", "ready", 20 * time.Minute},
			{"ready", "delivered", time.Duration(25+rnd.Intn(30)) * time.Minute},
		}
		at := created
		for _, s := range steps {
			at = at.Add(s.offset)
			if _, err := pool.Exec(ctx, `
				INSERT INTO order_status_history (id, order_id, old_status, new_status, changed_at)
				VALUES ($1,$2,$3,$4,$5)
			`, uuid.NewString(), orderID, s.old, s.new, at); err != nil {
				return err
			}
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO payments (id, order_id, method, amount, status, created_at)
			VALUES ($1,$2,'cash',$3::numeric*$4,'succeeded',$5)
		`, uuid.NewString(), orderID, it.price, qty, at); err != nil {
			return err
		}
	}
	log.Printf("[seed] inserted %d historical orders", n)
	return nil
}

func printSummary(ctx context.Context, pool *pgxpool.Pool) error {
	tables := []string{
		"users", "categories", "menu_items", "orders",
		"order_items", "order_status_history", "rider_profiles", "payments",
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "table\trows")
	for _, t := range tables {
		var n int64
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+t).Scan(&n); err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\n", t, n)
	}
	return tw.Flush()
}
