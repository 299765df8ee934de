package domain

import (
	"errors"
	"fmt"
	"maps"
)

var (
	ErrTaken              = errors.New("tile is taken")
	ErrOutOfBounds        = errors.New("tile is out of bounds")
	ErrEntityLookupFailed = errors.New("entity is not tracked by the grid")
)

// Grid - поле боя: размеры, якорь в мире и два индекса занятости.
// occupied и entities всегда меняются вместе.
type Grid struct {
	width  int
	height int

	// anchor - центр сетки в мировых координатах. Пишется снаружи,
	// когда меняется трансформ доски.
	anchor Vec2

	occupied map[Coords]Occupant
	entities map[OccupantID]Coords
}

// NewGrid создает пустую сетку. Нулевой размер - ошибка конфигурации, паникуем.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid grid dimension %dx%d: no dimension can be 0", width, height))
	}
	return &Grid{
		width:    width,
		height:   height,
		occupied: make(map[Coords]Occupant),
		entities: make(map[OccupantID]Coords),
	}
}

func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

func (g *Grid) Anchor() Vec2 {
	return g.anchor
}

func (g *Grid) SetAnchor(pos Vec2) {
	g.anchor = pos
}

// InBounds проверяет, что клетка лежит в [0,width) x [0,height)
func (g *Grid) InBounds(c Coords) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// CanPlaceAt: сначала границы, потом занятость.
// За пределами поля всегда ErrOutOfBounds, даже если там "что-то есть".
func (g *Grid) CanPlaceAt(c Coords) error {
	if !g.InBounds(c) {
		return ErrOutOfBounds
	}
	if _, ok := g.occupied[c]; ok {
		return ErrTaken
	}
	return nil
}

// PlaceEntity ставит сущность в клетку. При ошибке сетка не меняется.
func (g *Grid) PlaceEntity(o Occupant, c Coords) error {
	if err := g.CanPlaceAt(c); err != nil {
		return err
	}
	if at, ok := g.entities[o.ID]; ok {
		return fmt.Errorf("%s already placed at %s", o.ID, at)
	}
	g.entities[o.ID] = c
	g.occupied[c] = o
	return nil
}

// MoveEntity переставляет уже учтенную сущность.
// Исходная клетка освобождается только после успешной проверки цели.
func (g *Grid) MoveEntity(id OccupantID, to Coords) error {
	from, ok := g.entities[id]
	if !ok {
		return ErrEntityLookupFailed
	}
	if err := g.CanPlaceAt(to); err != nil {
		return err
	}

	o, ok := g.occupied[from]
	if !ok || o.ID != id {
		// Индексы разъехались - это баг, а не ошибка игрока
		panic(fmt.Sprintf("grid index out of sync: %s expected at %s", id, from))
	}

	delete(g.occupied, from)
	g.occupied[to] = o
	g.entities[id] = to
	return nil
}

// ContainsDie - в клетке стоит существо (игрок или враг)
func (g *Grid) ContainsDie(c Coords) bool {
	o, ok := g.occupied[c]
	return ok && o.IsDie()
}

func (g *Grid) EntityToCoords(id OccupantID) (Coords, bool) {
	c, ok := g.entities[id]
	return c, ok
}

func (g *Grid) CoordsToTileEntity(c Coords) (Occupant, bool) {
	o, ok := g.occupied[c]
	return o, ok
}

// Occupants возвращает копию карты занятости (для снапшотов)
func (g *Grid) Occupants() map[Coords]Occupant {
	return maps.Clone(g.occupied)
}

// Len - сколько клеток занято
func (g *Grid) Len() int {
	return len(g.occupied)
}
