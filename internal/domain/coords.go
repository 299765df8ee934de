package domain

import "fmt"

// Coords - адрес тайла или смещение относительно тайла.
// Границ у типа нет, их проверяет Grid.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin - нулевое смещение (клетка самого актора)
var Origin = Coords{}

func NewCoords(x, y int) Coords {
	return Coords{X: x, Y: y}
}

func (c Coords) Add(other Coords) Coords {
	return Coords{X: c.X + other.X, Y: c.Y + other.Y}
}

func (c Coords) Sub(other Coords) Coords {
	return Coords{X: c.X - other.X, Y: c.Y - other.Y}
}

// Scale умножает вектор на скаляр (луч длиной n)
func (c Coords) Scale(n int) Coords {
	return Coords{X: c.X * n, Y: c.Y * n}
}

// Chebyshev возвращает "королевское" расстояние до другой клетки
func (c Coords) Chebyshev(other Coords) int {
	return max(abs(c.X-other.X), abs(c.Y-other.Y))
}

func (c Coords) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Vec2 - точка в мировых координатах (y смотрит вверх)
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
