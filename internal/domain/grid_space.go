package domain

import "math"

// TileSize - длина ребра тайла в мировых единицах
const TileSize = 64

// Size - размер всей сетки в мировых единицах
func (g *Grid) Size() Vec2 {
	return Vec2{X: float32(g.width * TileSize), Y: float32(g.height * TileSize)}
}

// WorldToTile переводит мировую точку в клетку.
// Мир: центр в anchor, y вверх. Сетка: начало в левом верхнем углу, y вниз.
func (g *Grid) WorldToTile(pos Vec2) (Coords, bool) {
	half := g.Size()
	half.X /= 2
	half.Y /= 2

	x := half.X - g.anchor.X + pos.X
	y := half.Y + g.anchor.Y - pos.Y

	c := Coords{
		X: int(math.Floor(float64(x / TileSize))),
		Y: int(math.Floor(float64(y / TileSize))),
	}
	if !g.InBounds(c) {
		return Coords{}, false
	}
	return c, true
}

// TileToWorld возвращает мировую позицию центра клетки.
// Обратна WorldToTile для любого тайла в пределах поля.
func (g *Grid) TileToWorld(c Coords) (Vec2, bool) {
	if !g.InBounds(c) {
		return Vec2{}, false
	}

	half := g.Size()
	half.X /= 2
	half.Y /= 2
	const halfTile = float32(TileSize) / 2

	return Vec2{
		X: float32(c.X*TileSize) + g.anchor.X + halfTile - half.X,
		Y: -float32(c.Y*TileSize) + g.anchor.Y - halfTile + half.Y,
	}, true
}
