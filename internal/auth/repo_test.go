package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	if !isUniqueViolation(dup) {
		t.Fatal("23505 should be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert user: %w", dup)) {
		t.Fatal("wrapped 23505 should be a unique violation")
	}
	// anything else (pool failure, timeout) must not read as a duplicate email
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatal("plain errors are not unique violations")
	}
}
