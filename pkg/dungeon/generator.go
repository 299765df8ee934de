package dungeon

import (
	"math/rand"
)

// Сколько раз пробуем поставить отрезок стены, прежде чем сдаться
const attemptsPerWall = 10

// Point - клетка поля
type Point struct {
	X, Y int
}

// Rect - прямоугольник клеток (отрезок стены или зона вокруг клетки)
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects - прямоугольники делят хотя бы одну клетку
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Grow расширяет прямоугольник на n клеток во все стороны
func (r Rect) Grow(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

func (r Rect) Points() []Point {
	pts := make([]Point, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Options - что раскидать по полю
type Options struct {
	Width, Height int
	Walls         int     // сколько отрезков стен
	Enemies       int     // сколько врагов
	Reserved      []Point // занятые клетки, вокруг них ничего не ставим
}

// Layout - результат: клетки стен и позиции врагов
type Layout struct {
	Walls   []Point
	Enemies []Point
}

// Scatter раскидывает короткие отрезки стен и врагов по полю.
// Стены не слипаются друг с другом и не касаются занятых клеток.
// Один и тот же rng дает один и тот же результат.
func Scatter(opts Options, rng *rand.Rand) Layout {
	var layout Layout
	if opts.Width <= 0 || opts.Height <= 0 {
		return layout
	}

	var blocked []Rect
	for _, p := range opts.Reserved {
		blocked = append(blocked, Rect{X: p.X, Y: p.Y, W: 1, H: 1}.Grow(1))
	}

	// 1. Стены
	placed := 0
	for attempt := 0; placed < opts.Walls && attempt < opts.Walls*attemptsPerWall; attempt++ {
		length := randRange(rng, 1, 3)
		seg := Rect{W: length, H: 1}
		if rng.Intn(2) == 0 {
			seg = Rect{W: 1, H: length}
		}
		if seg.W > opts.Width || seg.H > opts.Height {
			continue
		}
		seg.X = rng.Intn(opts.Width - seg.W + 1)
		seg.Y = rng.Intn(opts.Height - seg.H + 1)

		if intersectsAny(seg, blocked) {
			continue
		}
		blocked = append(blocked, seg.Grow(1))
		layout.Walls = append(layout.Walls, seg.Points()...)
		placed++
	}

	// 2. Враги на свободные клетки
	taken := make(map[Point]bool)
	for _, p := range opts.Reserved {
		taken[p] = true
	}
	for _, p := range layout.Walls {
		taken[p] = true
	}

	var free []Point
	for y := range opts.Height {
		for x := range opts.Width {
			p := Point{X: x, Y: y}
			if !taken[p] && !nearReserved(p, opts.Reserved) {
				free = append(free, p)
			}
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	n := min(opts.Enemies, len(free))
	layout.Enemies = append(layout.Enemies, free[:n]...)

	return layout
}

// --- Вспомогательные функции ---

func intersectsAny(r Rect, others []Rect) bool {
	for _, o := range others {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

func nearReserved(p Point, reserved []Point) bool {
	for _, r := range reserved {
		if abs(p.X-r.X) <= 1 && abs(p.Y-r.Y) <= 1 {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func randRange(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}
