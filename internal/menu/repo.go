// Package menu provides the repository interface and PostgreSQL implementation
// for the catalog: categories and menu items.
package menu

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("menu item not found")
)

// ItemUpdate lists exactly the fields an admin may change on an item.
// Nil means "leave unchanged".
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *string
	ImageURL    *string
	Available   *bool
}

type Repository interface {
	CreateItem(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]ItemWithCategory, error)
	UpdateItem(ctx context.Context, id string, upd ItemUpdate) (*Item, error)
	DeleteItem(ctx context.Context, id string) (bool, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateItem(ctx context.Context, it *Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO menu_items (id, name, description, price, image_url, category_id, available, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
	`, it.ID, it.Name, it.Description, it.Price, it.ImageURL, it.CategoryID, it.Available)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price::text, image_url, category_id, available, created_at, updated_at
		FROM menu_items WHERE id=$1
	`, id).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.ImageURL, &it.CategoryID, &it.Available, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *PGRepo) List(ctx context.Context) ([]ItemWithCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.name, m.description, m.price::text, m.image_url, m.category_id, m.available,
		       m.created_at, m.updated_at, c.name
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		ORDER BY c.name, m.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemWithCategory
	for rows.Next() {
		var it ItemWithCategory
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.ImageURL, &it.CategoryID,
			&it.Available, &it.CreatedAt, &it.UpdatedAt, &it.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateItem(ctx context.Context, id string, upd ItemUpdate) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := r.db.QueryRow(ctx, `
		UPDATE menu_items
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price       = COALESCE($4::numeric, price),
		    image_url   = COALESCE($5, image_url),
		    available   = COALESCE($6, available),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING id, name, description, price::text, image_url, category_id, available, created_at, updated_at
	`, id, upd.Name, upd.Description, upd.Price, upd.ImageURL, upd.Available).
		Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.ImageURL, &it.CategoryID, &it.Available, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *PGRepo) DeleteItem(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1,$2)`, c.ID, c.Name)
	return err
}
