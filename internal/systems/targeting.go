package systems

import (
	"slices"

	"dicedeck-server/internal/domain"
)

// TargetTiles возвращает клетки, которые можно выбрать целью карты.
//
// Смещения карты прикладываются к клетке актора, затем:
// - выкидываем все, что за пределами поля;
// - атака/лечение - только клетки с существами;
// - движение - только свободные клетки.
//
// Для карт без выбора клетки возвращает nil.
func TargetTiles(g *domain.Grid, origin domain.Coords, action domain.CardAction) []domain.Coords {
	trigger := action.Trigger()
	if trigger.Kind != domain.TriggerTileSelection {
		return nil
	}

	tiles := make([]domain.Coords, 0, len(trigger.Offsets))
	for _, offset := range trigger.Offsets {
		tile := origin.Add(offset)
		if !g.InBounds(tile) {
			continue
		}
		if trigger.RequiresCreature {
			if !g.ContainsDie(tile) {
				continue
			}
		} else if g.CanPlaceAt(tile) != nil {
			continue
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

// Contains - есть ли клетка среди предложенных целей
func Contains(tiles []domain.Coords, c domain.Coords) bool {
	return slices.Contains(tiles, c)
}
