package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// StartHandSize - сколько карт добираем в пустую руку
const StartHandSize = 3

var ErrUnknownCard = errors.New("card is not in any pile")

// Pile - стопка карт
type Pile uint8

const (
	PileNone Pile = iota
	PileDraw
	PileHand
	PileDiscard
)

func (p Pile) String() string {
	switch p {
	case PileDraw:
		return "DRAW"
	case PileHand:
		return "HAND"
	case PileDiscard:
		return "DISCARD"
	default:
		return "NONE"
	}
}

// Piles - колода, рука и сброс. Каждая карта ровно в одной стопке:
// перенос всегда "вырезать и вставить".
// Верх колоды - конец слайса.
type Piles struct {
	draw       []CardID
	hand       []CardID
	discard    []CardID
	membership map[CardID]Pile
}

func NewPiles() *Piles {
	return &Piles{membership: make(map[CardID]Pile)}
}

// Add кладет новую карту наверх стопки
func (p *Piles) Add(id CardID, to Pile) error {
	if cur, ok := p.membership[id]; ok {
		return fmt.Errorf("%s already in %s", id, cur)
	}
	p.push(id, to)
	return nil
}

// Move переносит карту в другую стопку
func (p *Piles) Move(id CardID, to Pile) error {
	from, ok := p.membership[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownCard)
	}
	if from == to {
		return nil
	}
	p.remove(id, from)
	p.push(id, to)
	return nil
}

func (p *Piles) PileOf(id CardID) Pile {
	return p.membership[id]
}

func (p *Piles) Draw() []CardID    { return slices.Clone(p.draw) }
func (p *Piles) Hand() []CardID    { return slices.Clone(p.hand) }
func (p *Piles) Discard() []CardID { return slices.Clone(p.discard) }

// RefillHand добирает руку, если она пуста.
// Берем с верха колоды; если не хватило - тасуем сброс, добираем из него,
// а остаток сброса уходит в колоду.
func (p *Piles) RefillHand(size int, rng *rand.Rand) []CardID {
	if len(p.hand) > 0 {
		return nil
	}

	toDraw := make([]CardID, 0, size)
	for len(toDraw) < size && len(p.draw) > 0 {
		top := p.draw[len(p.draw)-1]
		p.remove(top, PileDraw)
		toDraw = append(toDraw, top)
	}

	if len(toDraw) < size && len(p.discard) > 0 {
		reshuffled := slices.Clone(p.discard)
		rng.Shuffle(len(reshuffled), func(i, j int) {
			reshuffled[i], reshuffled[j] = reshuffled[j], reshuffled[i]
		})
		for _, id := range reshuffled {
			p.remove(id, PileDiscard)
			if len(toDraw) < size {
				toDraw = append(toDraw, id)
			} else {
				p.push(id, PileDraw)
			}
		}
	}

	for _, id := range toDraw {
		p.push(id, PileHand)
	}
	return toDraw
}

func (p *Piles) push(id CardID, to Pile) {
	switch to {
	case PileDraw:
		p.draw = append(p.draw, id)
	case PileHand:
		p.hand = append(p.hand, id)
	case PileDiscard:
		p.discard = append(p.discard, id)
	default:
		panic(fmt.Sprintf("cannot put %s into pile %s", id, to))
	}
	p.membership[id] = to
}

func (p *Piles) remove(id CardID, from Pile) {
	var pile *[]CardID
	switch from {
	case PileDraw:
		pile = &p.draw
	case PileHand:
		pile = &p.hand
	case PileDiscard:
		pile = &p.discard
	default:
		return
	}
	if i := slices.Index(*pile, id); i >= 0 {
		*pile = slices.Delete(*pile, i, i+1)
	}
	delete(p.membership, id)
}
