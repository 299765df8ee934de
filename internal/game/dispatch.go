package game

import (
	"fmt"

	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/systems"

	"github.com/sirupsen/logrus"
)

// resolve применяет эффект карты. target == nil для карт без выбора клетки.
// Сначала все проверки, потом события: при ошибке состояние не меняется.
func (m *Match) resolve(card *domain.Card, target *domain.Coords) error {
	action := card.Action
	needsTile := action.Trigger().Kind == domain.TriggerTileSelection
	if needsTile != (target != nil) {
		// Сюда можно попасть только через ошибку в розыгрыше, а не через ввод игрока
		panic(fmt.Sprintf("%s (%s) resolved through the wrong trigger path", card.ID, action.Kind))
	}

	switch action.Kind {
	case domain.CardMove:
		if err := m.Grid.CanPlaceAt(*target); err != nil {
			return fmt.Errorf("move to %s: %w", *target, err)
		}
		m.Bus.Publish(domain.MoveRequested{Actor: m.Player, To: *target, Cost: action.Cost})

	case domain.CardAttack:
		victim, err := m.creatureAt(*target)
		if err != nil {
			return err
		}
		m.Bus.Publish(domain.PipChangeRequested{Target: victim, Change: domain.OffsetPips(-action.Amount)})
		m.Bus.Publish(domain.PipChangeRequested{Target: m.Player, Change: domain.OffsetPips(-action.Cost)})

	case domain.CardHeal:
		patient, err := m.creatureAt(*target)
		if err != nil {
			return err
		}
		m.Bus.Publish(domain.PipChangeRequested{Target: patient, Change: domain.OffsetPips(action.Amount)})

	case domain.CardHealSelf:
		m.Bus.Publish(domain.PipChangeRequested{Target: m.Player, Change: domain.OffsetPips(action.Amount)})

	case domain.CardRerollSelf:
		m.Bus.Publish(domain.PipChangeRequested{Target: m.Player, Change: domain.RandomisePips()})

	case domain.CardJunk:
		// Мусор просто уходит в сброс
	}

	entry := m.log.WithFields(logrus.Fields{
		"card":   card.ID,
		"action": action.Kind,
	})
	if target != nil {
		entry = entry.WithField("target", *target)
	}
	entry.Info("Card resolved.")

	m.selection = nil
	m.Bus.Publish(domain.CardDiscarded{Card: card.ID})
	m.Bus.Publish(domain.TargetsCleared{})
	m.RefillHand()
	return nil
}

func (m *Match) creatureAt(c domain.Coords) (domain.OccupantID, error) {
	o, ok := m.Grid.CoordsToTileEntity(c)
	if !ok || !o.IsDie() {
		return 0, fmt.Errorf("no die at %s: %w", c, ErrIllegalTarget)
	}
	return o.ID, nil
}

// --- Обработчики событий ---

// onMoveRequested: сначала сетка, потом цена хода
func (m *Match) onMoveRequested(ev domain.MoveRequested) {
	if _, err := systems.ApplyMove(m.Grid, ev.Actor, ev.To); err != nil {
		return
	}
	m.Bus.Publish(domain.PipChangeRequested{Target: ev.Actor, Change: domain.OffsetPips(-ev.Cost)})
}

func (m *Match) onPipChangeRequested(ev domain.PipChangeRequested) {
	die, ok := m.Dice[ev.Target]
	if !ok {
		m.log.WithField("target", ev.Target).Warn("Pip change for an occupant without a die.")
		return
	}
	res := systems.ApplyPipChange(ev.Target, die, ev.Change, m.Rng)
	if res.Exhausted && res.Before > 0 {
		m.Bus.Publish(domain.DieExhausted{Occupant: ev.Target})
	}
}

func (m *Match) onCardDiscarded(ev domain.CardDiscarded) {
	if err := m.Piles.Move(ev.Card, domain.PileDiscard); err != nil {
		m.log.WithError(err).Warn("Discard failed.")
	}
}
