package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 {
		t.Errorf("Right() = %d, expected 6", r.Right())
	}
	if r.Bottom() != 8 {
		t.Errorf("Bottom() = %d, expected 8", r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"origin", 0, 0, true},
		{"inside", 5, 5, true},
		{"last cell", 9, 9, true},
		{"right edge exclusive", 10, 5, false},
		{"bottom edge exclusive", 5, 10, false},
		{"negative", -1, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionActivate) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionActivate)
	if !f.Has(ActionActivate) {
		t.Error("expected Activate after Set")
	}
	if f.Has(ActionConfirm) {
		t.Error("Confirm should not be set")
	}

	f.Clear()
	if f.Has(ActionActivate) {
		t.Error("expected no actions after Clear")
	}
}

func TestActionString(t *testing.T) {
	if ActionActivate.String() != "Activate" {
		t.Errorf("unexpected name %q", ActionActivate.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unexpected name %q", Action(99).String())
	}
}
