package engine

import (
	"maps"
	"slices"
	"strconv"

	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/game"
	"dicedeck-server/pkg/api"
)

// BuildState создает "снимок" партии для клиента.
// Порядок клеток и карт детерминирован: одинаковое состояние дает одинаковый JSON.
func BuildState(m *game.Match) api.ServerResponse {
	w, h := m.Grid.Dimensions()
	anchor := m.Grid.Anchor()

	resp := api.ServerResponse{
		Type: "UPDATE",
		Grid: &api.GridMeta{
			Width:    w,
			Height:   h,
			TileSize: domain.TileSize,
			AnchorX:  anchor.X,
			AnchorY:  anchor.Y,
		},
		Occupants: buildOccupants(m),
		Hand:      buildCards(m, m.Piles.Hand()),
		DrawCount: len(m.Piles.Draw()),
		Discard:   buildCards(m, m.Piles.Discard()),
	}

	if sel := m.Selection(); sel != nil {
		resp.Selection = &api.SelectionView{
			CardID: int(sel.Card),
			Tiles:  toTileRefs(sel.Tiles),
		}
	}

	return resp
}

func buildOccupants(m *game.Match) []api.OccupantView {
	occupied := m.Grid.Occupants()
	tiles := slices.Collect(maps.Keys(occupied))
	domain.SortCoords(tiles)

	views := make([]api.OccupantView, 0, len(tiles))
	for _, c := range tiles {
		o := occupied[c]
		world, _ := m.Grid.TileToWorld(c)

		view := api.OccupantView{
			ID:    occupantKey(o.ID),
			Kind:  o.Kind.String(),
			Pos:   api.TileRef{X: c.X, Y: c.Y},
			World: api.WorldPos{X: world.X, Y: world.Y},
		}
		if die, ok := m.Dice[o.ID]; ok {
			view.Die = &api.DieView{
				Kind:      die.Kind.String(),
				Pips:      die.Pips,
				MaxPips:   die.Kind.MaxPips(),
				ShowPips:  die.Kind.ShowPips(),
				Exhausted: die.Exhausted(),
			}
		}
		views = append(views, view)
	}
	return views
}

// occupantKey - десятичная запись ID, ее принимает SYNC_POSITION
func occupantKey(id domain.OccupantID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func buildCards(m *game.Match, ids []domain.CardID) []api.CardView {
	actor := m.PlayerDie()

	views := make([]api.CardView, 0, len(ids))
	for _, id := range ids {
		card, ok := m.Cards[id]
		if !ok {
			continue
		}
		action := card.Action
		trigger := action.Trigger()

		view := api.CardView{
			ID:       int(id),
			Title:    action.Title(),
			Action:   action.Kind.String(),
			Trigger:  trigger.Kind.String(),
			Offsets:  toTileRefs(trigger.Offsets),
			Playable: actor != nil && card.CanPlay(actor) == nil,
		}
		if trigger.Kind == domain.TriggerTileSelection {
			view.Reach = action.Reach.String()
		}
		if delta, ok := action.PipChange(); ok {
			view.PipChange = &delta
		}
		if p, ok := action.Palette(); ok {
			view.Palette = &api.PaletteView{Highlight: p.Highlight, Hover: p.Hover}
		}
		views = append(views, view)
	}
	return views
}

func toTileRefs(cs []domain.Coords) []api.TileRef {
	if len(cs) == 0 {
		return nil
	}
	refs := make([]api.TileRef, len(cs))
	for i, c := range cs {
		refs[i] = api.TileRef{X: c.X, Y: c.Y}
	}
	return refs
}
