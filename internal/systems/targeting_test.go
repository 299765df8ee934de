package systems

import (
	"testing"

	"dicedeck-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occ(kind domain.OccupantKind, idx uint64) domain.Occupant {
	return domain.Occupant{ID: domain.PackOccupantID(kind, idx), Kind: kind}
}

// Поле 5x5: игрок (2,2), враг (2,0), стена (3,2)
func targetingGrid(t *testing.T) *domain.Grid {
	t.Helper()
	g := domain.NewGrid(5, 5)
	require.NoError(t, g.PlaceEntity(occ(domain.OccupantPlayer, 1), domain.Coords{X: 2, Y: 2}))
	require.NoError(t, g.PlaceEntity(occ(domain.OccupantEnemy, 2), domain.Coords{X: 2, Y: 0}))
	require.NoError(t, g.PlaceEntity(occ(domain.OccupantWall, 3), domain.Coords{X: 3, Y: 2}))
	return g
}

func TestTargetTiles_MoveSkipsOccupied(t *testing.T) {
	g := targetingGrid(t)
	origin := domain.Coords{X: 2, Y: 2}

	tiles := TargetTiles(g, origin, domain.MoveAction(domain.Exact(1), domain.DirOrthogonal, 1))
	assert.Equal(t, []domain.Coords{{X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}, tiles)

	// Дистанция 2: враг на (2,0) занимает клетку
	tiles = TargetTiles(g, origin, domain.MoveAction(domain.Exact(2), domain.DirOrthogonal, 1))
	assert.Equal(t, []domain.Coords{{X: 0, Y: 2}, {X: 4, Y: 2}, {X: 2, Y: 4}}, tiles)
}

func TestTargetTiles_AttackNeedsCreature(t *testing.T) {
	g := targetingGrid(t)
	origin := domain.Coords{X: 2, Y: 2}

	tiles := TargetTiles(g, origin, domain.AttackAction(domain.UpTo(2), domain.DirOrthogonal, 2, 2, false))
	// Враг и сам игрок; стена не существо
	assert.Equal(t, []domain.Coords{{X: 2, Y: 0}, {X: 2, Y: 2}}, tiles)
}

func TestTargetTiles_ClipsToBoard(t *testing.T) {
	g := domain.NewGrid(3, 3)
	require.NoError(t, g.PlaceEntity(occ(domain.OccupantPlayer, 1), domain.Coords{}))

	tiles := TargetTiles(g, domain.Coords{}, domain.MoveAction(domain.UpTo(1), domain.DirArea, 1))
	assert.Equal(t, []domain.Coords{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, tiles)

	for _, c := range tiles {
		assert.True(t, g.InBounds(c))
	}
}

func TestTargetTiles_CardSelectionHasNone(t *testing.T) {
	g := targetingGrid(t)
	for _, a := range []domain.CardAction{domain.HealSelfAction(1), domain.RerollSelfAction(), domain.JunkAction()} {
		assert.Nil(t, TargetTiles(g, domain.Coords{X: 2, Y: 2}, a), "%s", a.Kind)
	}
}

func TestContains(t *testing.T) {
	tiles := []domain.Coords{{X: 1, Y: 1}, {X: 2, Y: 3}}
	assert.True(t, Contains(tiles, domain.Coords{X: 2, Y: 3}))
	assert.False(t, Contains(tiles, domain.Coords{X: 3, Y: 2}))
	assert.False(t, Contains(nil, domain.Coords{}))
}
