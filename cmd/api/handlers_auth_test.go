package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mominahmadrao/SmartResturantSystem/internal/auth"
	"github.com/mominahmadrao/SmartResturantSystem/internal/rider"
)

// stubUserRepo implements auth.Repository in memory, keyed by email.
type stubUserRepo struct{ byEmail map[string]*auth.User }

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{byEmail: map[string]*auth.User{}} }

func (s *stubUserRepo) Create(ctx context.Context, u *auth.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return auth.ErrAlreadyExist
	}
	cp := *u
	s.byEmail[u.Email] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*auth.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// stubRiderRepo implements rider.Repository in memory, keyed by user id. It
// shares the user store so CreateWithUser is all-or-nothing like the real
// transaction.
type stubRiderRepo struct {
	byUser      map[string]*rider.Profile
	users       *stubUserRepo
	profileFail error
}

func newStubRiderRepo(users *stubUserRepo) *stubRiderRepo {
	return &stubRiderRepo{byUser: map[string]*rider.Profile{}, users: users}
}

func (s *stubRiderRepo) CreateWithUser(ctx context.Context, u *auth.User, p *rider.Profile) error {
	if s.profileFail != nil {
		return s.profileFail
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	cp := *p
	s.byUser[p.UserID] = &cp
	return nil
}

func (s *stubRiderRepo) GetByUser(ctx context.Context, userID string) (*rider.Profile, error) {
	p, ok := s.byUser[userID]
	if !ok {
		return nil, rider.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubRiderRepo) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	p, ok := s.byUser[userID]
	if !ok {
		return rider.ErrNotFound
	}
	p.CurrentLat, p.CurrentLng = lat, lng
	return nil
}

func (s *stubRiderRepo) SetOnline(ctx context.Context, userID string, online bool) error {
	p, ok := s.byUser[userID]
	if !ok {
		return rider.ErrNotFound
	}
	p.IsOnline = online
	return nil
}

func TestRegister_DefaultsToCustomer(t *testing.T) {
	t.Parallel()

	users := newStubUserRepo()
	riders := newStubRiderRepo(users)
	r := gin.New()
	r.POST("/auth/register", registerHandler(users, riders))

	body := `{"name":"Customer User","email":"c@example.com","password":"secret1"}`
	if w := doJSON(r, http.MethodPost, "/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	u, err := users.GetByEmail(context.Background(), "c@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Role != auth.RoleCustomer {
		t.Fatalf("role=%s, want customer", u.Role)
	}
	if u.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if len(riders.byUser) != 0 {
		t.Fatal("customer signup must not create a rider profile")
	}
}

func TestRegister_RiderGetsProfile(t *testing.T) {
	t.Parallel()

	users := newStubUserRepo()
	riders := newStubRiderRepo(users)
	r := gin.New()
	r.POST("/auth/register", registerHandler(users, riders))

	body := `{"name":"Rider User","email":"r@example.com","password":"secret1","role":"rider","vehicle_details":"Honda CD 70 - Red"}`
	if w := doJSON(r, http.MethodPost, "/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	u, err := users.GetByEmail(context.Background(), "r@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	p, ok := riders.byUser[u.ID]
	if !ok {
		t.Fatal("rider signup must create a rider profile")
	}
	if p.VehicleDetails != "Honda CD 70 - Red" {
		t.Fatalf("vehicle=%q", p.VehicleDetails)
	}
}

// User and profile are written in one transaction: a failed rider signup must
// not leave a user row behind.
func TestRegister_RiderFailureLeavesNoUser(t *testing.T) {
	t.Parallel()

	users := newStubUserRepo()
	riders := newStubRiderRepo(users)
	riders.profileFail = errors.New("connection refused")
	r := gin.New()
	r.POST("/auth/register", registerHandler(users, riders))

	body := `{"name":"Rider User","email":"r@example.com","password":"secret1","role":"rider"}`
	if w := doJSON(r, http.MethodPost, "/auth/register", body); w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
	if len(users.byEmail) != 0 {
		t.Fatal("failed rider signup must not persist a user")
	}
	if len(riders.byUser) != 0 {
		t.Fatal("failed rider signup must not persist a profile")
	}
}

func TestRegister_Rejections(t *testing.T) {
	t.Parallel()

	users := newStubUserRepo()
	riders := newStubRiderRepo(users)
	r := gin.New()
	r.POST("/auth/register", registerHandler(users, riders))

	ok := `{"name":"A","email":"dup@example.com","password":"secret1"}`
	if w := doJSON(r, http.MethodPost, "/auth/register", ok); w.Code != http.StatusCreated {
		t.Fatalf("seed: status=%d", w.Code)
	}
	for name, body := range map[string]string{
		"duplicate email": ok,
		"unknown role":    `{"name":"A","email":"x@example.com","password":"secret1","role":"chef"}`,
		"bad email":       `{"name":"A","email":"not-an-email","password":"secret1"}`,
		"short password":  `{"name":"A","email":"y@example.com","password":"abc"}`,
	} {
		if w := doJSON(r, http.MethodPost, "/auth/register", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d, want 400", name, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	users := newStubUserRepo()
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := users.Create(context.Background(), &auth.User{
		ID: "u-admin", Name: "Admin User", Email: "admin@example.com",
		PasswordHash: hash, Role: auth.RoleAdmin,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	r := gin.New()
	r.POST("/auth/login", loginHandler(users, tokens))

	w := doJSON(r, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"admin123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		Role        string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.TokenType != "bearer" || resp.Role != "admin" {
		t.Fatalf("resp=%+v", resp)
	}
	id, err := tokens.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != "u-admin" || id.Role != auth.RoleAdmin {
		t.Fatalf("identity=%+v", id)
	}

	for name, body := range map[string]string{
		"wrong password": `{"email":"admin@example.com","password":"nope123"}`,
		"unknown email":  `{"email":"ghost@example.com","password":"admin123"}`,
	} {
		if w := doJSON(r, http.MethodPost, "/auth/login", body); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status=%d, want 401", name, w.Code)
		}
	}
}
