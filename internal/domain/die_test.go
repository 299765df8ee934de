package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allDice = []DieKind{D2, D4, D6, D8, D12, D20}

func TestDie_ApplyOffsetClamps(t *testing.T) {
	for _, kind := range allDice {
		for start := 0; start <= kind.MaxPips(); start++ {
			for delta := -25; delta <= 25; delta++ {
				d := NewDie(kind, start)
				d.ApplyOffset(delta)

				want := min(max(start+delta, 0), kind.MaxPips())
				if d.Pips != want {
					t.Fatalf("%s: %d%+d = %d, want %d", kind, start, delta, d.Pips, want)
				}
			}
		}
	}
}

func TestNewDie_Clamps(t *testing.T) {
	assert.Equal(t, 6, NewDie(D6, 99).Pips)
	assert.Equal(t, 0, NewDie(D4, -3).Pips)
	assert.True(t, NewDie(D20, 0).Exhausted())
	assert.False(t, NewDie(D20, 1).Exhausted())
}

func TestDie_RandomiseStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, kind := range allDice {
		seen := make(map[int]bool)
		d := NewDie(kind, 0)
		for range 500 {
			d.Randomise(rng)
			assert.GreaterOrEqual(t, d.Pips, 1)
			assert.LessOrEqual(t, d.Pips, kind.MaxPips())
			seen[d.Pips] = true
		}
		assert.Len(t, seen, kind.MaxPips(), "%s should hit every face", kind)
	}
}

func TestParseDieKind(t *testing.T) {
	tests := []struct {
		input string
		want  DieKind
		ok    bool
	}{
		{"d6", D6, true},
		{"D20", D20, true},
		{"d2", D2, true},
		{"d7", D6, false},
		{"", D6, false},
	}

	for _, tt := range tests {
		got, ok := ParseDieKind(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDieKind(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}

	assert.Equal(t, "D12", D12.String())
	assert.True(t, D6.ShowPips())
	assert.False(t, D8.ShowPips())
}
