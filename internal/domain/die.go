package domain

import (
	"math/rand"
	"strings"
)

// DieKind - количество граней кубика, оно же максимум пипов
type DieKind uint8

const (
	D6 DieKind = iota
	D2
	D4
	D8
	D12
	D20
)

var dieKindToMax = map[DieKind]int{
	D2:  2,
	D4:  4,
	D6:  6,
	D8:  8,
	D12: 12,
	D20: 20,
}

var dieStringToKind = map[string]DieKind{
	"D2":  D2,
	"D4":  D4,
	"D6":  D6,
	"D8":  D8,
	"D12": D12,
	"D20": D20,
}

// ParseDieKind: "d6" -> D6. Второе значение false, если такого кубика нет.
func ParseDieKind(s string) (DieKind, bool) {
	k, ok := dieStringToKind[strings.ToUpper(s)]
	return k, ok
}

func (k DieKind) MaxPips() int {
	return dieKindToMax[k]
}

// ShowPips - мелкие кубики рисуются точками, крупные числом
func (k DieKind) ShowPips() bool {
	return k == D2 || k == D4 || k == D6
}

func (k DieKind) String() string {
	for s, v := range dieStringToKind {
		if v == k {
			return s
		}
	}
	return "D?"
}

// Die - счетчик пипов (здоровье и ресурс одновременно), всегда в [0, MaxPips]
type Die struct {
	Kind DieKind `json:"kind"`
	Pips int     `json:"pips"`
}

func NewDie(kind DieKind, pips int) *Die {
	d := &Die{Kind: kind}
	d.set(pips)
	return d
}

// ApplyOffset сдвигает пипы. Ниже 0 и выше максимума не уходит.
func (d *Die) ApplyOffset(delta int) {
	d.set(d.Pips + delta)
}

// Randomise перебрасывает кубик: равномерно из [1, MaxPips]
func (d *Die) Randomise(rng *rand.Rand) {
	d.Pips = 1 + rng.Intn(d.Kind.MaxPips())
}

// Exhausted - пипы кончились, кубик должен умереть
func (d *Die) Exhausted() bool {
	return d.Pips == 0
}

func (d *Die) set(v int) {
	d.Pips = min(max(v, 0), d.Kind.MaxPips())
}

// PipChangeKind - как меняется счетчик
type PipChangeKind uint8

const (
	PipOffset PipChangeKind = iota
	PipRandomise
)

// PipChange - директива изменения пипов, которую несут события
type PipChange struct {
	Kind   PipChangeKind `json:"kind"`
	Offset int           `json:"offset,omitempty"`
}

func OffsetPips(delta int) PipChange {
	return PipChange{Kind: PipOffset, Offset: delta}
}

func RandomisePips() PipChange {
	return PipChange{Kind: PipRandomise}
}
