package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/systems"
	"dicedeck-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotInHand     = errors.New("card is not in hand")
	ErrNoSelection   = errors.New("no card is selected")
	ErrIllegalTarget = errors.New("tile is not a legal target")
	ErrNoActor       = errors.New("acting die is not on the grid")
)

// Selection - карта, ждущая выбора клетки, и законные цели на момент выбора
type Selection struct {
	Card  domain.CardID   `json:"card"`
	Tiles []domain.Coords `json:"tiles"`
}

// Outcome - что произошло после команды
type Outcome struct {
	Card     *domain.Card
	Target   *domain.Coords
	Pending  bool // карта ждет выбора клетки
	Resolved bool // эффект применен, карта в сбросе
}

// Match - состояние одной партии: сетка, кубики, карты и розыгрыш карты.
// Все мутации идут синхронно через Bus, снаружи Match никто не меняет.
type Match struct {
	Grid     *domain.Grid
	Dice     map[domain.OccupantID]*domain.Die
	Cards    map[domain.CardID]*domain.Card
	Piles    *domain.Piles
	Player   domain.OccupantID
	HandSize int

	Bus *Bus
	Rng *rand.Rand

	selection *Selection
	log       *logrus.Entry
}

// NewMatch создает матч и подписывает обработчики эффектов на шину
func NewMatch(grid *domain.Grid, rng *rand.Rand, handSize int) *Match {
	m := &Match{
		Grid:     grid,
		Dice:     make(map[domain.OccupantID]*domain.Die),
		Cards:    make(map[domain.CardID]*domain.Card),
		Piles:    domain.NewPiles(),
		HandSize: handSize,
		Bus:      NewBus(),
		Rng:      rng,
		log:      logger.For("match"),
	}

	On(m.Bus, m.onMoveRequested)
	On(m.Bus, m.onPipChangeRequested)
	On(m.Bus, m.onCardDiscarded)

	return m
}

// AddDie ставит кубик на поле
func (m *Match) AddDie(o domain.Occupant, die *domain.Die, at domain.Coords) error {
	if err := m.Grid.PlaceEntity(o, at); err != nil {
		return fmt.Errorf("place %s at %s: %w", o.ID, at, err)
	}
	m.Dice[o.ID] = die
	if o.Kind == domain.OccupantPlayer {
		m.Player = o.ID
	}
	return nil
}

// AddCard кладет карту в колоду добора
func (m *Match) AddCard(card *domain.Card) error {
	if _, ok := m.Cards[card.ID]; ok {
		return fmt.Errorf("duplicate %s", card.ID)
	}
	if err := m.Piles.Add(card.ID, domain.PileDraw); err != nil {
		return err
	}
	m.Cards[card.ID] = card
	return nil
}

// Selection возвращает копию текущего выбора (nil, если ничего не выбрано)
func (m *Match) Selection() *Selection {
	if m.selection == nil {
		return nil
	}
	return &Selection{Card: m.selection.Card, Tiles: slices.Clone(m.selection.Tiles)}
}

// PlayerDie - кубик игрока
func (m *Match) PlayerDie() *domain.Die {
	return m.Dice[m.Player]
}

// SelectCard выбирает карту из руки.
// Карты без выбора клетки играются сразу, остальные ждут PickTile.
// Предыдущий выбор отменяется без последствий.
func (m *Match) SelectCard(id domain.CardID) (Outcome, error) {
	card, ok := m.Cards[id]
	if !ok || m.Piles.PileOf(id) != domain.PileHand {
		return Outcome{}, fmt.Errorf("%s: %w", id, ErrNotInHand)
	}
	if err := card.CanPlay(m.PlayerDie()); err != nil {
		return Outcome{}, err
	}

	m.Deselect()

	trigger := card.Action.Trigger()
	if trigger.Kind == domain.TriggerCardSelection {
		if err := m.resolve(card, nil); err != nil {
			return Outcome{Card: card}, err
		}
		return Outcome{Card: card, Resolved: true}, nil
	}

	origin, ok := m.Grid.EntityToCoords(m.Player)
	if !ok {
		return Outcome{Card: card}, ErrNoActor
	}
	tiles := systems.TargetTiles(m.Grid, origin, card.Action)
	m.selection = &Selection{Card: id, Tiles: tiles}

	m.log.WithFields(logrus.Fields{
		"card":    id,
		"action":  card.Action.Kind,
		"targets": len(tiles),
	}).Debug("Card selected, waiting for a tile.")

	m.Bus.Publish(domain.TargetsOffered{Card: id, Tiles: slices.Clone(tiles)})
	return Outcome{Card: card, Pending: true}, nil
}

// PickTile разыгрывает выбранную карту на клетку из предложенных
func (m *Match) PickTile(c domain.Coords) (Outcome, error) {
	if m.selection == nil {
		return Outcome{}, ErrNoSelection
	}
	card := m.Cards[m.selection.Card]
	if !systems.Contains(m.selection.Tiles, c) {
		return Outcome{Card: card}, fmt.Errorf("%s for %s: %w", c, card.ID, ErrIllegalTarget)
	}

	if err := m.resolve(card, &c); err != nil {
		return Outcome{Card: card, Pending: true}, err
	}
	return Outcome{Card: card, Target: &c, Resolved: true}, nil
}

// Deselect снимает выбор. Ничего, кроме подсветки, не меняется.
func (m *Match) Deselect() bool {
	if m.selection == nil {
		return false
	}
	m.selection = nil
	m.Bus.Publish(domain.TargetsCleared{})
	return true
}

// SyncPosition - сущность передвинули снаружи (drag-and-drop).
// Двигаем только то, что сетка уже знает: новых сущностей отсюда не бывает.
func (m *Match) SyncPosition(o domain.Occupant, pos domain.Vec2) (domain.Coords, error) {
	tile, ok := m.Grid.WorldToTile(pos)
	if !ok {
		return domain.Coords{}, domain.ErrOutOfBounds
	}

	cur, tracked := m.Grid.EntityToCoords(o.ID)
	if !tracked {
		m.log.WithFields(logrus.Fields{
			"occupant": o.ID,
			"tile":     tile,
		}).Warn("External position for an untracked occupant.")
		return tile, domain.ErrEntityLookupFailed
	}
	if cur == tile {
		return tile, nil
	}

	if err := m.Grid.MoveEntity(o.ID, tile); err != nil {
		m.log.WithError(err).WithField("occupant", o.ID).Debug("External position rejected.")
		return tile, err
	}

	// Доска изменилась - пересчитываем цели, чтобы не предлагать устаревшие
	if m.selection != nil {
		card := m.Cards[m.selection.Card]
		if origin, ok := m.Grid.EntityToCoords(m.Player); ok {
			m.selection.Tiles = systems.TargetTiles(m.Grid, origin, card.Action)
			m.Bus.Publish(domain.TargetsOffered{Card: card.ID, Tiles: slices.Clone(m.selection.Tiles)})
		}
	}
	return tile, nil
}

// RefillHand добирает руку, если она пуста
func (m *Match) RefillHand() []domain.CardID {
	drawn := m.Piles.RefillHand(m.HandSize, m.Rng)
	if len(drawn) > 0 {
		m.Bus.Publish(domain.HandRefilled{Cards: slices.Clone(drawn)})
	}
	return drawn
}
