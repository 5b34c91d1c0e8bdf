// Package board holds the authoritative backgammon position: the 24 points,
// the bar and the borne-off trays.
//
// Points are indexed 0-23 (points 1-24 as seen by white). A positive value
// is a stack of white checkers, a negative value a stack of black checkers,
// and the magnitude is the checker count:
//
//	23 22 21 20 19 18 | 17 16 15 14 13 12
//	-2                | -5
//	------------------+------------------
//	+2                | +5
//	 0  1  2  3  4  5 |  6  7  8  9 10 11
//
// Board is a plain value. Assigning it copies every field, which is what the
// analyzer uses for speculative moves.
package board

// NumPoints is the number of points on the board.
const NumPoints = 24

// CheckersPerSide is the number of checkers each player owns.
const CheckersPerSide = 15

// HomeSize is the number of points in a home board.
const HomeSize = 6

// Counts holds a per-color checker count (bar or borne-off).
type Counts struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// Of returns the count for color c.
func (k Counts) Of(c Color) int {
	if c == Black {
		return k.Black
	}
	return k.White
}

// Board is the full checker layout.
type Board struct {
	points [NumPoints]int
	bar    [2]int // indexed by Color.index()
	off    [2]int
}

// New returns the standard opening layout.
func New() Board {
	var b Board

	// White moves 1 -> 24
	b.points[0] = 2  // 2 on point 1
	b.points[11] = 5 // 5 on point 12
	b.points[16] = 3 // 3 on point 17
	b.points[18] = 5 // 5 on point 19

	// Black moves 24 -> 1
	b.points[23] = -2
	b.points[12] = -5
	b.points[7] = -3
	b.points[5] = -5

	return b
}

// FromPoints builds an arbitrary position. Nothing is validated.
func FromPoints(points [NumPoints]int, bar, off Counts) Board {
	b := Board{points: points}
	b.bar[White.index()] = bar.White
	b.bar[Black.index()] = bar.Black
	b.off[White.index()] = off.White
	b.off[Black.index()] = off.Black
	return b
}

// Point returns the signed value at idx. idx outside 0-23 panics.
func (b *Board) Point(idx int) int {
	return b.points[idx]
}

// Points returns a copy of the 24 points.
func (b *Board) Points() [NumPoints]int {
	return b.points
}

// Bar returns a copy of the bar counts.
func (b *Board) Bar() Counts {
	return Counts{White: b.bar[White.index()], Black: b.bar[Black.index()]}
}

// BorneOff returns a copy of the borne-off counts.
func (b *Board) BorneOff() Counts {
	return Counts{White: b.off[White.index()], Black: b.off[Black.index()]}
}

// HasCheckersOnBar reports whether c has at least one checker on the bar.
func (b *Board) HasCheckersOnBar(c Color) bool {
	return b.bar[c.index()] > 0
}

// BarCount returns the number of c's checkers on the bar.
func (b *Board) BarCount(c Color) int {
	return b.bar[c.index()]
}

// OffCount returns the number of c's checkers already borne off.
func (b *Board) OffCount(c Color) int {
	return b.off[c.index()]
}

// CheckerCount returns every checker c owns: on points, on the bar and off.
// It is 15 for every reachable game state.
func (b *Board) CheckerCount(c Color) int {
	n := b.bar[c.index()] + b.off[c.index()]
	for _, v := range b.points {
		if c.Owns(v) {
			n += abs(v)
		}
	}
	return n
}

// SetPoint overwrites the value at idx.
func (b *Board) SetPoint(idx, v int) {
	b.points[idx] = v
}

// AddPoint adds delta to the value at idx.
func (b *Board) AddPoint(idx, delta int) {
	b.points[idx] += delta
}

// AddBar adds delta to c's bar count.
func (b *Board) AddBar(c Color, delta int) {
	b.bar[c.index()] += delta
}

// AddBorneOff adds delta to c's borne-off count and returns the new total.
func (b *Board) AddBorneOff(c Color, delta int) int {
	b.off[c.index()] += delta
	return b.off[c.index()]
}

// HomeRange returns the inclusive index range of c's home board.
// White: 18-23 (points 19-24). Black: 0-5 (points 1-6).
func HomeRange(c Color) (lo, hi int) {
	if c == Black {
		return 0, HomeSize - 1
	}
	return NumPoints - HomeSize, NumPoints - 1
}

// InHome reports whether idx lies in c's home board.
func InHome(c Color, idx int) bool {
	lo, hi := HomeRange(c)
	return idx >= lo && idx <= hi
}

// OnBoard reports whether idx is a valid point index.
func OnBoard(idx int) bool {
	return idx >= 0 && idx < NumPoints
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
