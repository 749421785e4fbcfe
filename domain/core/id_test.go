package core

import (
	"testing"
)

// TestNewRunIDUniqueness tests that NewRunID generates unique identifiers
func TestNewRunIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[RunID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewRunID()
		if ID(id).IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	valid := NewRunID().String()
	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"  " + valid + " ", false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseRunID(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for input '%s', got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for input '%s': %v", tt.input, err)
			}
			if result.String() != valid {
				t.Errorf("Expected %s, got %s", valid, result)
			}
		})
	}
}

// TestHashRowsOrderSensitive tests that row order changes the fingerprint
func TestHashRowsOrderSensitive(t *testing.T) {
	a := HashRows([][]int{{1, 2, 3}, {4, 5, 6}})
	b := HashRows([][]int{{4, 5, 6}, {1, 2, 3}})
	c := HashRows([][]int{{1, 2, 3}, {4, 5, 6}})

	if a == b {
		t.Error("Expected different hashes for different row order")
	}
	if a != c {
		t.Error("Expected identical hashes for identical rows")
	}
	if len(a.Short()) != 12 {
		t.Errorf("Expected 12-character short hash, got %q", a.Short())
	}
}

// TestErrorClassification tests the sentinel helpers
func TestErrorClassification(t *testing.T) {
	if !IsValidationError(NewInvalidFilterConfigError("pares", "min > max")) {
		t.Error("Expected filter config error to be a validation error")
	}
	if !IsValidationError(NewInvalidCorpusError(3, NewInvalidDrawError("duplicate number 7"))) {
		t.Error("Expected corpus error to be a validation error")
	}
	if IsValidationError(NewNotFoundError("run", "x")) {
		t.Error("Expected not-found error not to be a validation error")
	}
	if !IsNotFoundError(ErrRunNotFound) {
		t.Error("Expected ErrRunNotFound to be a not-found error")
	}
}
