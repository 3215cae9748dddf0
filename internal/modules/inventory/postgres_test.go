package inventory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsFKViolation(t *testing.T) {
	fk := &pq.Error{Code: "23503", Message: "insert or update on table \"inventory\" violates foreign key constraint"}

	if !isFKViolation(fk) {
		t.Error("expected a 23503 pq error to match")
	}
	if !isFKViolation(fmt.Errorf("exec: %w", fk)) {
		t.Error("expected a wrapped 23503 pq error to match")
	}
	if isFKViolation(&pq.Error{Code: "23505", Message: "duplicate key value"}) {
		t.Error("a unique violation must not match")
	}
	if isFKViolation(errors.New("some driver error mentioning 23503")) {
		t.Error("a non-pq error must not match, whatever its text")
	}
}
