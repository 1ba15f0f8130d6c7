package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestConstraintViolations(t *testing.T) {
	unique := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	foreign := &pq.Error{Code: "23503", Message: "violates foreign key constraint"}

	tests := []struct {
		name       string
		err        error
		wantUnique bool
		wantFK     bool
	}{
		{"unique", unique, true, false},
		{"wrapped unique", fmt.Errorf("save failed: %w", unique), true, false},
		{"foreign key", foreign, false, true},
		{"plain error", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.wantUnique {
				t.Errorf("Expected IsUniqueViolation=%v, got %v", tt.wantUnique, got)
			}
			if got := IsForeignKeyViolation(tt.err); got != tt.wantFK {
				t.Errorf("Expected IsForeignKeyViolation=%v, got %v", tt.wantFK, got)
			}
		})
	}
}
