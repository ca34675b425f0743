package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"gorm.io/gorm"
)

func TestMapError_Validation(t *testing.T) {
	err := MapError("op", ValidationError("bad input"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_DomainValidation(t *testing.T) {
	err := MapError("op", ordering.ValidationError("payment method is expired"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_ContextCancellation(t *testing.T) {
	err := MapError("op", context.Canceled)
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PostgresCodes(t *testing.T) {
	cases := []struct {
		pgCode string
		want   domainagg.ErrorCode
	}{
		{"23505", domainagg.CodeConflict},
		{"23503", domainagg.CodePreconditionFailed},
		{"40001", domainagg.CodeRetryable},
		{"40P01", domainagg.CodeRetryable},
		{"55P03", domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		err := MapError("op", &pgconn.PgError{Code: tc.pgCode})
		if !domainagg.IsCode(err, tc.want) {
			t.Fatalf("pg code %s: expected %q, got %q (%v)", tc.pgCode, tc.want, domainagg.CodeOf(err), err)
		}
	}
}

func TestMapError_MessageFallbacks(t *testing.T) {
	if err := MapError("op", errors.New("duplicate key value violates unique constraint")); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("duplicate key: got %q", domainagg.CodeOf(err))
	}
	if err := MapError("op", errors.New("deadlock detected")); !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("deadlock: got %q", domainagg.CodeOf(err))
	}
	if err := MapError("op", errors.New("something exploded")); !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("unknown: got %q", domainagg.CodeOf(err))
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeRetryable, "op", "retry", errors.New("boom"))
	out := MapError("other", in)
	if out != in {
		t.Fatalf("expected passthrough aggregate error")
	}
}
