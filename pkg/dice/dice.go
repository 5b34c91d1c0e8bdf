// Package dice produces backgammon rolls.
//
// Roller is the only source of randomness in the rules engine. Production
// code uses Dice; tests substitute a Sequence to make games deterministic.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Faces is the number of sides on a die.
const Faces = 6

// Roller rolls two dice.
type Roller interface {
	Roll() (int, int)
}

// Dice is a Roller backed by a seeded PRNG. It is not safe for concurrent use.
type Dice struct {
	rng *rand.Rand
}

// New returns Dice seeded with seed. The same seed gives the same rolls.
func New(seed int64) *Dice {
	return &Dice{rng: rand.New(rand.NewSource(seed))}
}

// NewRandom returns Dice seeded from crypto/rand.
func NewRandom() (*Dice, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// NewSeed returns a high-entropy seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Roll returns two independent values in 1..6.
func (d *Dice) Roll() (int, int) {
	return d.rng.Intn(Faces) + 1, d.rng.Intn(Faces) + 1
}

// Pending expands a roll into the dice the player may use: both values, or
// four copies of the value on doubles.
func Pending(d1, d2 int) []int {
	if d1 == d2 {
		return []int{d1, d1, d1, d1}
	}
	return []int{d1, d2}
}

// Valid reports whether v is a die face.
func Valid(v int) bool {
	return v >= 1 && v <= Faces
}

// Sequence replays a fixed list of rolls, starting over when exhausted.
type Sequence struct {
	rolls [][2]int
	next  int
}

// NewSequence returns a Sequence over rolls. It panics when rolls is empty.
func NewSequence(rolls ...[2]int) *Sequence {
	if len(rolls) == 0 {
		panic("dice: NewSequence needs at least one roll")
	}
	return &Sequence{rolls: rolls}
}

// Roll returns the next roll in the sequence.
func (s *Sequence) Roll() (int, int) {
	r := s.rolls[s.next%len(s.rolls)]
	s.next++
	return r[0], r[1]
}
