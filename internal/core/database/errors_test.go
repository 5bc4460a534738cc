package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bee-edu/askbee/internal/core"
)

func TestMapWriteErr(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if mapWriteErr(nil) != nil {
			t.Fatal("nil must map to nil")
		}
	})

	t.Run("unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		err := mapWriteErr(fmt.Errorf("exec: %w", pgErr))
		if !errors.Is(err, core.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("other pg error", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42P01"} // undefined_table
		err := mapWriteErr(pgErr)
		if !errors.Is(err, core.ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		err := mapWriteErr(errors.New("dial tcp: connection refused"))
		if !errors.Is(err, core.ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}
