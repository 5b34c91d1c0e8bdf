package board

import (
	"errors"
	"testing"
)

func TestNewOpeningLayout(t *testing.T) {
	b := New()

	want := map[int]int{
		0: 2, 11: 5, 16: 3, 18: 5,
		23: -2, 12: -5, 7: -3, 5: -5,
	}
	for idx := 0; idx < NumPoints; idx++ {
		if got := b.Point(idx); got != want[idx] {
			t.Errorf("Point(%d) = %d, want %d", idx, got, want[idx])
		}
	}

	if got := b.Bar(); got != (Counts{}) {
		t.Errorf("Bar() = %+v, want zero", got)
	}
	if got := b.BorneOff(); got != (Counts{}) {
		t.Errorf("BorneOff() = %+v, want zero", got)
	}

	for _, c := range []Color{White, Black} {
		if n := b.CheckerCount(c); n != CheckersPerSide {
			t.Errorf("CheckerCount(%v) = %d, want %d", c, n, CheckersPerSide)
		}
	}
}

func TestPointsIsACopy(t *testing.T) {
	b := New()
	pts := b.Points()
	pts[0] = 99

	if b.Point(0) != 2 {
		t.Errorf("mutating Points() result changed the board: Point(0) = %d", b.Point(0))
	}
}

func TestValueCopyIsIndependent(t *testing.T) {
	b := New()
	clone := b
	clone.SetPoint(0, 0)
	clone.AddBar(White, 2)
	clone.AddBorneOff(Black, 1)

	if b.Point(0) != 2 || b.HasCheckersOnBar(White) || b.OffCount(Black) != 0 {
		t.Error("writes to a copied Board leaked into the original")
	}
}

func TestPointOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Point(24) did not panic")
		}
	}()
	b := New()
	idx := NumPoints
	b.Point(idx)
}

func TestFromPoints(t *testing.T) {
	var pts [NumPoints]int
	pts[3] = 4
	pts[20] = -1
	b := FromPoints(pts, Counts{White: 1, Black: 2}, Counts{White: 10, Black: 12})

	if b.BarCount(White) != 1 || b.BarCount(Black) != 2 {
		t.Errorf("Bar() = %+v", b.Bar())
	}
	if b.OffCount(White) != 10 || b.OffCount(Black) != 12 {
		t.Errorf("BorneOff() = %+v", b.BorneOff())
	}
	if got := b.CheckerCount(White); got != 15 {
		t.Errorf("CheckerCount(White) = %d, want 15", got)
	}
	if got := b.CheckerCount(Black); got != 15 {
		t.Errorf("CheckerCount(Black) = %d, want 15", got)
	}
}

func TestHomeRange(t *testing.T) {
	tests := []struct {
		color Color
		idx   int
		want  bool
	}{
		{White, 18, true},
		{White, 23, true},
		{White, 17, false},
		{Black, 0, true},
		{Black, 5, true},
		{Black, 6, false},
	}
	for _, tc := range tests {
		if got := InHome(tc.color, tc.idx); got != tc.want {
			t.Errorf("InHome(%v, %d) = %v, want %v", tc.color, tc.idx, got, tc.want)
		}
	}
}

func TestColor(t *testing.T) {
	if White.Direction() != 1 || Black.Direction() != -1 {
		t.Errorf("Direction: white %d, black %d", White.Direction(), Black.Direction())
	}
	if White.Opponent() != Black || Black.Opponent() != White {
		t.Error("Opponent() is not symmetric")
	}
	if !White.Owns(3) || White.Owns(-3) || White.Owns(0) {
		t.Error("White.Owns wrong")
	}
	if !Black.Opposes(2) || Black.Opposes(-2) {
		t.Error("Black.Opposes wrong")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"white", White, false},
		{"Blancas", White, false},
		{"negras", Black, false},
		{" BLACK ", Black, false},
		{"red", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", tc.in, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseColor(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		})
	}
}
