package dungeon

import (
	"cavesight/internal/domain"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
)

// Клетки промежуточной сетки клеточного автомата
const (
	cellWall rl.Cell = iota
	cellFloor
)

func toPoint(p domain.Position) gruid.Point {
	return gruid.Point{X: p.X, Y: p.Y}
}

func toPosition(p gruid.Point) domain.Position {
	return domain.Position{X: p.X, Y: p.Y}
}

// passPath реализует paths.Pather: связность по четырем направлениям.
type passPath struct {
	passable func(gruid.Point) bool
	nbs      paths.Neighbors
}

func (pp *passPath) Neighbors(p gruid.Point) []gruid.Point {
	return pp.nbs.Cardinal(p, pp.passable)
}

// tunnelPath реализует paths.Astar для прокладки коридоров между комнатами.
type tunnelPath struct {
	cave *domain.Cave
	nbs  paths.Neighbors
}

func (tp *tunnelPath) Neighbors(p gruid.Point) []gruid.Point {
	return tp.nbs.Cardinal(p, func(q gruid.Point) bool {
		return tp.cave.InBoundsFully(toPosition(q))
	})
}

func (tp *tunnelPath) Cost(from, to gruid.Point) int {
	p := toPosition(to)
	switch {
	case tp.cave.IsVault(p):
		// Коридоры обходят хранилища
		return 100
	case tp.cave.Feat(p) == domain.FeatWallOuter:
		// Стену комнаты лучше пересечь один раз, чем идти вдоль нее
		return 10
	case tp.cave.IsPassable(p) || tp.cave.IsDoor(p):
		return 1
	}
	return 2
}

func (tp *tunnelPath) Estimation(from, to gruid.Point) int {
	return paths.DistanceManhattan(from, to)
}
