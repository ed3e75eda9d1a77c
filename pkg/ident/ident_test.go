package ident

import "testing"

func TestNextIsMonotonic(t *testing.T) {
	a := New()

	prev := ID(0)
	for i := 0; i < 100; i++ {
		id := a.Next()
		if id <= prev {
			t.Fatalf("Next() = %d after %d, want strictly increasing", id, prev)
		}
		prev = id
	}
	if a.Issued() != 100 {
		t.Errorf("Issued() = %d, want 100", a.Issued())
	}
}

func TestFirstIdentifierIsOne(t *testing.T) {
	if got := New().Next(); got != 1 {
		t.Errorf("first Next() = %d, want 1", got)
	}
}

func TestReference(t *testing.T) {
	a := New()
	id := a.Next()

	ref := a.Reference(id)
	if ref.Target != id {
		t.Errorf("Reference(%d).Target = %d", id, ref.Target)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name  string
		issue int
		min   ID
		want  ID
	}{
		{"PastCounter", 3, 50, 51},
		{"BehindCounter", 10, 5, 11},
		{"AtCounter", 4, 5, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New()
			for i := 0; i < tt.issue; i++ {
				a.Next()
			}
			a.Advance(tt.min)
			if got := a.Next(); got != tt.want {
				t.Errorf("Next() after Advance(%d) = %d, want %d", tt.min, got, tt.want)
			}
		})
	}
}

func TestIndependentSessions(t *testing.T) {
	a, b := New(), New()
	a.Next()
	a.Next()

	if got := b.Next(); got != 1 {
		t.Errorf("fresh allocator Next() = %d, want 1 (state must not leak across sessions)", got)
	}
}

func TestIDString(t *testing.T) {
	if got := ID(42).String(); got != "42" {
		t.Errorf("ID(42).String() = %q, want \"42\"", got)
	}
}
