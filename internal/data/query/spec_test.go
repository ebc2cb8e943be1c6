package query

import (
	"testing"
	"time"
)

func TestSortOrderClause(t *testing.T) {
	asc := Sort{Field: "created_at"}
	if got := asc.OrderClause(); got != "created_at ASC" {
		t.Fatalf("unexpected order clause %q", got)
	}
	desc := Sort{Field: "amount", Desc: true}
	if got := desc.OrderClause(); got != "amount DESC" {
		t.Fatalf("unexpected order clause %q", got)
	}
}

func TestSpecIsZero(t *testing.T) {
	if !(Spec{}).IsZero() {
		t.Fatal("empty spec should be zero")
	}
	if !(Spec{Search: "   "}).IsZero() {
		t.Fatal("whitespace-only search should be zero")
	}
	if (Spec{Search: "ana"}).IsZero() {
		t.Fatal("search spec should not be zero")
	}
	if (Spec{Equals: map[string]any{"status": "paid"}}).IsZero() {
		t.Fatal("equals spec should not be zero")
	}
	now := time.Now()
	if (Spec{Since: &now}).IsZero() {
		t.Fatal("since spec should not be zero")
	}
}
