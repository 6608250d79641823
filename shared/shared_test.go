package shared_test

import (
	"backoffice/shared"
	"testing"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid 0 string", input: "0", expected: boolPtr(false)},
		{name: "valid TRUE string", input: "TRUE", expected: boolPtr(true)},
		{name: "invalid string returns nil", input: "invalid", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}

				return
			}

			if result == nil {
				t.Errorf("expected %v, got nil", *tt.expected)
			} else if *result != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, *result)
			}
		})
	}
}

func TestCheckboxChecked(t *testing.T) {
	for input, expected := range map[string]bool{"on": true, "true": true, "": false, "off": false, "false": false} {
		if got := shared.CheckboxChecked(input); got != expected {
			t.Errorf("CheckboxChecked(%q) = %v, expected %v", input, got, expected)
		}
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := shared.CalculateTotalPage(tt.total, tt.limit); result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTrimmedOrNil(t *testing.T) {
	if shared.TrimmedOrNil("   ") != nil {
		t.Error("expected nil for blank input")
	}

	if got := shared.TrimmedOrNil("  hello "); got == nil || *got != "hello" {
		t.Errorf("expected trimmed value, got %v", got)
	}

	if shared.Deref(nil) != "" || shared.Deref(shared.TrimmedOrNil("x")) != "x" {
		t.Error("unexpected Deref result")
	}
}

func TestCompactStrings(t *testing.T) {
	got := shared.CompactStrings([]string{"b", "", "a", " b ", "a"})

	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("unexpected result %v", got)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
