package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"dicedeck-server/internal/config"
	"dicedeck-server/internal/domain"
	"dicedeck-server/pkg/dungeon"
)

// BuildMatch собирает матч по описанию уровня:
// сетка, кубик игрока, враги, стены и колода. Первая рука сразу добирается.
func BuildMatch(lvl config.LevelConfig, handSize int, rng *rand.Rand) (*Match, error) {
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level size %dx%d", lvl.Width, lvl.Height)
	}

	if lvl.Scatter != nil {
		lvl = scatter(lvl, rng)
	}

	grid := domain.NewGrid(lvl.Width, lvl.Height)
	grid.SetAnchor(domain.Vec2{X: lvl.Anchor.X, Y: lvl.Anchor.Y})
	m := NewMatch(grid, rng, handSize)

	var seq uint64
	nextID := func(kind domain.OccupantKind) domain.OccupantID {
		seq++
		return domain.PackOccupantID(kind, seq)
	}

	// 1. Игрок
	playerDie, err := dieFromConfig(lvl.Player, rng)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	player := domain.Occupant{ID: nextID(domain.OccupantPlayer), Kind: domain.OccupantPlayer}
	if err := m.AddDie(player, playerDie, toCoords(lvl.Player.At)); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	// 2. Враги
	for i, ec := range lvl.Enemies {
		die, err := dieFromConfig(ec, rng)
		if err != nil {
			return nil, fmt.Errorf("enemy %d: %w", i, err)
		}
		enemy := domain.Occupant{ID: nextID(domain.OccupantEnemy), Kind: domain.OccupantEnemy}
		if err := m.AddDie(enemy, die, toCoords(ec.At)); err != nil {
			return nil, fmt.Errorf("enemy %d: %w", i, err)
		}
	}

	// 3. Стены (без кубиков)
	for _, w := range lvl.Walls {
		wall := domain.Occupant{ID: nextID(domain.OccupantWall), Kind: domain.OccupantWall}
		if err := grid.PlaceEntity(wall, toCoords(w)); err != nil {
			return nil, fmt.Errorf("wall at %v: %w", w, err)
		}
	}

	// 4. Колода
	var cardID domain.CardID
	for i, cc := range lvl.Deck {
		action, err := actionFromConfig(cc)
		if err != nil {
			return nil, fmt.Errorf("deck entry %d: %w", i, err)
		}
		copies := max(cc.Copies, 1)
		for range copies {
			cardID++
			card := &domain.Card{ID: cardID, Action: action}
			if cc.MinPips > 0 || cc.MaxPips > 0 {
				card.Conditions = []domain.Condition{domain.PipCount(cc.MinPips, cc.MaxPips)}
			}
			if err := m.AddCard(card); err != nil {
				return nil, err
			}
		}
	}

	m.RefillHand()
	return m, nil
}

// scatter дописывает в копию уровня случайные стены и врагов
func scatter(lvl config.LevelConfig, rng *rand.Rand) config.LevelConfig {
	sc := lvl.Scatter
	reserved := []dungeon.Point{{X: lvl.Player.At.X, Y: lvl.Player.At.Y}}
	for _, e := range lvl.Enemies {
		reserved = append(reserved, dungeon.Point{X: e.At.X, Y: e.At.Y})
	}
	for _, w := range lvl.Walls {
		reserved = append(reserved, dungeon.Point{X: w.X, Y: w.Y})
	}

	layout := dungeon.Scatter(dungeon.Options{
		Width:    lvl.Width,
		Height:   lvl.Height,
		Walls:    sc.Walls,
		Enemies:  sc.Enemies,
		Reserved: reserved,
	}, rng)

	lvl.Walls = slices.Clone(lvl.Walls)
	for _, p := range layout.Walls {
		lvl.Walls = append(lvl.Walls, config.Point{X: p.X, Y: p.Y})
	}
	lvl.Enemies = slices.Clone(lvl.Enemies)
	for _, p := range layout.Enemies {
		lvl.Enemies = append(lvl.Enemies, config.DieConfig{
			Die:     sc.Die,
			PipsMin: sc.PipsMin,
			PipsMax: sc.PipsMax,
			At:      config.Point{X: p.X, Y: p.Y},
		})
	}
	return lvl
}

func toCoords(p config.Point) domain.Coords {
	return domain.Coords{X: p.X, Y: p.Y}
}

func dieFromConfig(dc config.DieConfig, rng *rand.Rand) (*domain.Die, error) {
	kind := domain.D6
	if dc.Die != "" {
		k, ok := domain.ParseDieKind(dc.Die)
		if !ok {
			return nil, fmt.Errorf("unknown die %q", dc.Die)
		}
		kind = k
	}

	pips := dc.Pips
	if pips == 0 {
		if dc.PipsMin <= 0 || dc.PipsMax < dc.PipsMin {
			return nil, fmt.Errorf("invalid pip range [%d, %d]", dc.PipsMin, dc.PipsMax)
		}
		pips = dc.PipsMin + rng.Intn(dc.PipsMax-dc.PipsMin+1)
	}
	return domain.NewDie(kind, pips), nil
}

func actionFromConfig(cc config.CardConfig) (domain.CardAction, error) {
	kind, ok := domain.ParseCardActionKind(cc.Action)
	if !ok {
		return domain.CardAction{}, fmt.Errorf("unknown action %q", cc.Action)
	}

	switch kind {
	case domain.CardHealSelf:
		return domain.HealSelfAction(cc.Amount), nil
	case domain.CardRerollSelf:
		return domain.RerollSelfAction(), nil
	case domain.CardJunk:
		return domain.JunkAction(), nil
	}

	// Остальным нужна геометрия
	if cc.Distance <= 0 {
		return domain.CardAction{}, errors.New("distance must be positive")
	}
	var reach domain.Reach
	switch strings.ToLower(cc.Reach) {
	case "exact", "":
		reach = domain.Exact(cc.Distance)
	case "range":
		reach = domain.UpTo(cc.Distance)
	default:
		return domain.CardAction{}, fmt.Errorf("unknown reach %q", cc.Reach)
	}
	dir, ok := domain.ParseDirection(cc.Direction)
	if !ok {
		return domain.CardAction{}, fmt.Errorf("unknown direction %q", cc.Direction)
	}

	switch kind {
	case domain.CardMove:
		return domain.MoveAction(reach, dir, cc.Cost), nil
	case domain.CardAttack:
		return domain.AttackAction(reach, dir, cc.Amount, cc.Cost, cc.Poison), nil
	default:
		return domain.HealAction(reach, dir, cc.Amount), nil
	}
}
