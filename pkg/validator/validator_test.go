package validator

import (
	"testing"
)

type samplePayload struct {
	Name     string `json:"name" validate:"required"`
	Count    int    `json:"count" validate:"required"`
	Kind     string `json:"kind,omitempty" validate:"omitempty,oneof=a b"`
	Untagged string `validate:"required"`
}

func TestMissingFields_UsesJSONNamesInFieldOrder(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&samplePayload{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	missing := v.MissingFields(err)
	want := []string{"name", "count", "Untagged"}
	if len(missing) != len(want) {
		t.Fatalf("expected %v, got %v", want, missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, missing)
		}
	}
}

func TestMissingFields_IgnoresNonRequiredFailures(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&samplePayload{Name: "x", Count: 1, Kind: "z", Untagged: "y"})
	if err == nil {
		t.Fatal("expected oneof failure")
	}
	if missing := v.MissingFields(err); len(missing) != 0 {
		t.Fatalf("expected no missing fields, got %v", missing)
	}

	formatted := v.FormatValidationErrors(err)
	if formatted["kind"] != "kind must be one of: a b" {
		t.Fatalf("unexpected formatted errors: %v", formatted)
	}
}

func TestMissingFields_NilError(t *testing.T) {
	v := NewValidator()
	if missing := v.MissingFields(nil); missing != nil {
		t.Fatalf("expected nil, got %v", missing)
	}
}
