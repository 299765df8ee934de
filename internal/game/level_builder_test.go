package game

import (
	"math/rand"
	"testing"

	"dicedeck-server/internal/config"
	"dicedeck-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatch_Default(t *testing.T) {
	cfg := config.Default()

	m, err := BuildMatch(cfg.Level, cfg.HandSize, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	w, h := m.Grid.Dimensions()
	assert.Equal(t, 9, w)
	assert.Equal(t, 9, h)

	assert.Len(t, m.Dice, 4)
	assert.Equal(t, 5, m.PlayerDie().Pips)
	at, ok := m.Grid.EntityToCoords(m.Player)
	require.True(t, ok)
	assert.Equal(t, domain.Coords{X: 4, Y: 4}, at)

	for id, die := range m.Dice {
		if id == m.Player {
			continue
		}
		assert.Equal(t, domain.OccupantEnemy, id.Kind())
		assert.GreaterOrEqual(t, die.Pips, 1)
		assert.LessOrEqual(t, die.Pips, 3)
	}

	assert.Len(t, m.Cards, 6)
	assert.Len(t, m.Piles.Hand(), 3, "first hand is drawn on build")
	assert.Len(t, m.Piles.Draw(), 3)
	assert.Nil(t, m.Selection())
}

func TestBuildMatch_Deterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Level.Scatter = &config.ScatterConfig{Walls: 3, Enemies: 2, Die: "d4", PipsMin: 1, PipsMax: 4}

	a, err := BuildMatch(cfg.Level, cfg.HandSize, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := BuildMatch(cfg.Level, cfg.HandSize, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	assert.Equal(t, a.Grid.Occupants(), b.Grid.Occupants())
	assert.Equal(t, a.Dice, b.Dice)
	assert.Equal(t, a.Piles.Hand(), b.Piles.Hand())

	// Разбросанные враги добавились к трем из конфига, конфиг не тронут
	assert.Len(t, a.Dice, 6)
	assert.Len(t, cfg.Level.Enemies, 3)
	assert.Empty(t, cfg.Level.Walls)
}

func TestBuildMatch_CopiesAndConditions(t *testing.T) {
	lvl := config.LevelConfig{
		Width: 3, Height: 3,
		Player: config.DieConfig{Die: "d8", Pips: 4, At: config.Point{X: 1, Y: 1}},
		Deck: []config.CardConfig{
			{Action: "attack", Reach: "range", Distance: 1, Direction: "diagonal", Amount: 3, Cost: 1, Poison: true, Copies: 2, MinPips: 3, MaxPips: 8},
			{Action: "junk"},
		},
	}

	m, err := BuildMatch(lvl, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	require.Len(t, m.Cards, 3)
	assert.Equal(t, domain.D8, m.PlayerDie().Kind)

	poison := m.Cards[1]
	assert.Equal(t, domain.CardAttack, poison.Action.Kind)
	assert.True(t, poison.Action.Poison)
	assert.Equal(t, domain.UpTo(1), poison.Action.Reach)
	assert.Equal(t, domain.DirDiagonal, poison.Action.Direction)
	assert.Equal(t, []domain.Condition{domain.PipCount(3, 8)}, poison.Conditions)
	assert.Equal(t, poison.Action, m.Cards[2].Action)

	assert.Equal(t, domain.CardJunk, m.Cards[3].Action.Kind)
	assert.Empty(t, m.Cards[3].Conditions)
}

func TestBuildMatch_Errors(t *testing.T) {
	base := func() config.LevelConfig {
		return config.LevelConfig{
			Width: 3, Height: 3,
			Player: config.DieConfig{Pips: 3, At: config.Point{X: 0, Y: 0}},
			Deck:   []config.CardConfig{{Action: "junk"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.LevelConfig)
		wantErr error
	}{
		{"unknown die", func(l *config.LevelConfig) { l.Player.Die = "d7" }, nil},
		{"player off board", func(l *config.LevelConfig) { l.Player.At = config.Point{X: 3, Y: 0} }, domain.ErrOutOfBounds},
		{"enemy on player", func(l *config.LevelConfig) {
			l.Enemies = []config.DieConfig{{Pips: 1, At: config.Point{X: 0, Y: 0}}}
		}, domain.ErrTaken},
		{"wall on enemy", func(l *config.LevelConfig) {
			l.Enemies = []config.DieConfig{{Pips: 1, At: config.Point{X: 1, Y: 0}}}
			l.Walls = []config.Point{{X: 1, Y: 0}}
		}, domain.ErrTaken},
		{"bad pip range", func(l *config.LevelConfig) {
			l.Enemies = []config.DieConfig{{PipsMin: 3, PipsMax: 1, At: config.Point{X: 1, Y: 0}}}
		}, nil},
		{"unknown action", func(l *config.LevelConfig) { l.Deck[0].Action = "teleport" }, nil},
		{"move without distance", func(l *config.LevelConfig) { l.Deck[0] = config.CardConfig{Action: "move", Direction: "area"} }, nil},
		{"unknown direction", func(l *config.LevelConfig) {
			l.Deck[0] = config.CardConfig{Action: "move", Distance: 1, Direction: "sideways"}
		}, nil},
		{"unknown reach", func(l *config.LevelConfig) {
			l.Deck[0] = config.CardConfig{Action: "heal", Reach: "far", Distance: 1, Direction: "area"}
		}, nil},
		{"zero size", func(l *config.LevelConfig) { l.Width = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl := base()
			tt.mutate(&lvl)

			_, err := BuildMatch(lvl, 3, rand.New(rand.NewSource(1)))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
