package domain

import (
	"errors"
	"fmt"
)

var ErrConditionNotMet = errors.New("card condition not met")

// CardID - идентификатор карты в колоде матча
type CardID int

func (id CardID) String() string {
	return fmt.Sprintf("card#%d", id)
}

// Condition - условие, при котором карту можно сыграть.
// Пока есть только один вид: число пипов актора в диапазоне [Min, Max].
type Condition struct {
	MinPips int `json:"minPips"`
	MaxPips int `json:"maxPips"`
}

// PipCount - условие на пипы актора
func PipCount(minPips, maxPips int) Condition {
	return Condition{MinPips: minPips, MaxPips: maxPips}
}

func (c Condition) Holds(d *Die) bool {
	return d != nil && d.Pips >= c.MinPips && d.Pips <= c.MaxPips
}

// Card - карта и ее эффект на всю жизнь матча
type Card struct {
	ID         CardID      `json:"id"`
	Action     CardAction  `json:"action"`
	Conditions []Condition `json:"conditions,omitempty"`
}

// CanPlay проверяет все условия карты для кубика актора
func (c *Card) CanPlay(actor *Die) error {
	for _, cond := range c.Conditions {
		if !cond.Holds(actor) {
			return fmt.Errorf("%s needs %d-%d pips: %w", c.ID, cond.MinPips, cond.MaxPips, ErrConditionNotMet)
		}
	}
	return nil
}
