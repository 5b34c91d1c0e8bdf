package dice

import (
	"reflect"
	"testing"
)

func TestRollInRange(t *testing.T) {
	d := New(42)
	for i := 0; i < 1000; i++ {
		d1, d2 := d.Roll()
		if !Valid(d1) || !Valid(d2) {
			t.Fatalf("Roll() = (%d, %d), want values in 1..6", d1, d2)
		}
	}
}

func TestRollDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 50; i++ {
		a1, a2 := a.Roll()
		b1, b2 := b.Roll()
		if a1 != b1 || a2 != b2 {
			t.Fatalf("roll %d differs: (%d,%d) vs (%d,%d)", i, a1, a2, b1, b2)
		}
	}
}

func TestRollCoversEveryFace(t *testing.T) {
	d := New(1)
	var seen [Faces + 1]bool
	for i := 0; i < 600; i++ {
		d1, d2 := d.Roll()
		seen[d1], seen[d2] = true, true
	}
	for face := 1; face <= Faces; face++ {
		if !seen[face] {
			t.Errorf("face %d never rolled", face)
		}
	}
}

func TestNewRandom(t *testing.T) {
	d, err := NewRandom()
	if err != nil {
		t.Fatalf("NewRandom() error = %v", err)
	}
	d1, d2 := d.Roll()
	if !Valid(d1) || !Valid(d2) {
		t.Errorf("Roll() = (%d, %d)", d1, d2)
	}
}

func TestPending(t *testing.T) {
	tests := []struct {
		d1, d2 int
		want   []int
	}{
		{3, 5, []int{3, 5}},
		{6, 1, []int{6, 1}},
		{4, 4, []int{4, 4, 4, 4}},
	}
	for _, tc := range tests {
		if got := Pending(tc.d1, tc.d2); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Pending(%d, %d) = %v, want %v", tc.d1, tc.d2, got, tc.want)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	s := NewSequence([2]int{3, 5}, [2]int{4, 4})

	want := [][2]int{{3, 5}, {4, 4}, {3, 5}}
	for i, w := range want {
		d1, d2 := s.Roll()
		if d1 != w[0] || d2 != w[1] {
			t.Errorf("roll %d = (%d, %d), want %v", i, d1, d2, w)
		}
	}
}

func TestValid(t *testing.T) {
	for v := -1; v <= 8; v++ {
		want := v >= 1 && v <= 6
		if Valid(v) != want {
			t.Errorf("Valid(%d) = %v, want %v", v, Valid(v), want)
		}
	}
}
