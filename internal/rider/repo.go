// Package rider holds per-rider delivery profiles: vehicle, rating, online
// flag and last reported location.
package rider

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mominahmadrao/SmartResturantSystem/internal/auth"
)

var ErrNotFound = errors.New("rider profile not found")

type Profile struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	FullName       string  `json:"full_name"`
	PhoneNumber    string  `json:"phone_number"`
	VehicleDetails string  `json:"vehicle_details"`
	CurrentLat     float64 `json:"current_lat"`
	CurrentLng     float64 `json:"current_lng"`
	IsOnline       bool    `json:"is_online"`
	Rating         float64 `json:"rating"`
}

type Repository interface {
	CreateWithUser(ctx context.Context, u *auth.User, p *Profile) error
	GetByUser(ctx context.Context, userID string) (*Profile, error)
	UpdateLocation(ctx context.Context, userID string, lat, lng float64) error
	SetOnline(ctx context.Context, userID string, online bool) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateWithUser registers a rider: the user row and the profile are written
// in one transaction so a rider account never exists without its profile.
func (r *PGRepo) CreateWithUser(ctx context.Context, u *auth.User, p *Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO users (id, name, email, phone, password_hash, role, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
	`, u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, string(u.Role)); err != nil {
		if isUniqueViolation(err) {
			return auth.ErrAlreadyExist
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO rider_profiles (id, user_id, full_name, phone_number, vehicle_details,
		                            current_lat, current_lng, is_online, rating)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, p.ID, p.UserID, p.FullName, p.PhoneNumber, p.VehicleDetails,
		p.CurrentLat, p.CurrentLng, p.IsOnline, p.Rating); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Profile
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, full_name, phone_number, vehicle_details,
		       current_lat, current_lng, is_online, rating
		FROM rider_profiles WHERE user_id=$1
	`, userID).Scan(&p.ID, &p.UserID, &p.FullName, &p.PhoneNumber, &p.VehicleDetails,
		&p.CurrentLat, &p.CurrentLng, &p.IsOnline, &p.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE rider_profiles SET current_lat=$2, current_lng=$3 WHERE user_id=$1
	`, userID, lat, lng)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetOnline(ctx context.Context, userID string, online bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE rider_profiles SET is_online=$2 WHERE user_id=$1
	`, userID, online)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
