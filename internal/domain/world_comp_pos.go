package domain

import "fmt"

// Position - клетка сетки. X - столбец, Y - строка.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Направления в порядке обхода соседей: 8 соседей, девятым - сама клетка.
// Порядок влияет только на очередность обхода в BFS, не на результат.
var (
	DirX = [9]int{0, 0, 1, -1, 1, -1, 1, -1, 0}
	DirY = [9]int{1, -1, 0, 0, 1, 1, -1, -1, 0}
)

// Neighbor возвращает соседа в направлении d (0..8).
func (p Position) Neighbor(d int) Position {
	return Position{X: p.X + DirX[d], Y: p.Y + DirY[d]}
}

// Shift возвращает новую позицию со смещением.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Distance - приближенное расстояние между клетками:
// max(dy,dx) + min(dy,dx)/2. Дает "восьмиугольник" вместо круга и
// переоценивает примерно на клетку на каждые 15 вдали от осей.
// Все радиусы (обзор, шум, запах) подобраны под эту формулу.
func Distance(a, b Position) int {
	ay := abs(a.Y - b.Y)
	ax := abs(a.X - b.X)
	if ay > ax {
		return ay + (ax >> 1)
	}
	return ax + (ay >> 1)
}

// Distance - то же, что пакетная Distance.
func (p Position) Distance(other Position) int {
	return Distance(p, other)
}

// Chebyshev возвращает max(|dx|, |dy|).
func Chebyshev(a, b Position) int {
	dy := abs(a.Y - b.Y)
	dx := abs(a.X - b.X)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ).
func (p Position) IsAdjacent(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
