package systems

import (
	"cavesight/internal/domain"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между центрами двух клеток.
// Все клетки пути, кроме концов, должны пропускать снаряды.
//
// Целочисленный алгоритм Джозефа Холла: идем вдоль длинной оси, дробная
// часть второй координаты и наклон масштабированы на 2*ax*ay. Если линия
// проходит ровно через угол, взгляд закрыт, только когда стоят обе клетки
// по бокам угла. Для хода конем достаточно, чтобы была
// свободна соседняя клетка вдоль длинной оси, поэтому в этом случае
// функция не симметрична. Во всех остальных случаях los(a,b) == los(b,a).
func HasLineOfSight(c *domain.Cave, p1, p2 domain.Position) bool {
	ok, blocker := lineOfSight(c, p1, p2)

	if logger.Log.IsLevelEnabled(logrus.TraceLevel) {
		losLogger := logger.Log.WithFields(logrus.Fields{
			"component": "physics_system",
			"function":  "HasLineOfSight",
			"start_pos": p1,
			"end_pos":   p2,
		})
		if ok {
			losLogger.Trace("No obstructions found")
		} else {
			losLogger.WithField("blocking_point", blocker).Trace("Line is blocked")
		}
	}
	return ok
}

func lineOfSight(c *domain.Cave, p1, p2 domain.Position) (bool, domain.Position) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y

	dx := x2 - x1
	dy := y2 - y1
	ax, ay := abs(dx), abs(dy)

	project := func(x, y int) bool {
		return c.IsProjectable(domain.Position{X: x, Y: y})
	}
	blocked := func(x, y int) (bool, domain.Position) {
		return false, domain.Position{X: x, Y: y}
	}
	// Линия проходит ровно через угол между (x, y) и диагональной
	// клеткой: хватает одной свободной клетки по бокам угла.
	corner := func(ox, oy, sx, sy int) bool {
		return project(ox+sx, oy) || project(ox, oy+sy)
	}

	// Соседние (или совпадающие) клетки
	if ax < 2 && ay < 2 {
		return true, p2
	}

	// Строго по вертикали
	if dx == 0 {
		sy := sign(dy)
		for ty := y1 + sy; ty != y2; ty += sy {
			if !project(x1, ty) {
				return blocked(x1, ty)
			}
		}
		return true, p2
	}

	// Строго по горизонтали
	if dy == 0 {
		sx := sign(dx)
		for tx := x1 + sx; tx != x2; tx += sx {
			if !project(tx, y1) {
				return blocked(tx, y1)
			}
		}
		return true, p2
	}

	sx, sy := sign(dx), sign(dy)

	// Ход конем: хватает свободной клетки вдоль длинной оси
	if ax == 1 && ay == 2 {
		if project(x1, y1+sy) {
			return true, p2
		}
	} else if ay == 1 && ax == 2 {
		if project(x1+sx, y1) {
			return true, p2
		}
	}

	f2 := ax * ay // половина масштаба
	f1 := f2 << 1 // масштаб

	if ax >= ay {
		// Идем по горизонтали
		qy := ay * ay
		m := qy << 1
		tx := x1 + sx
		ty := y1

		// Наклон ровно 1: первый шаг уже через угол
		if qy == f2 {
			if !corner(x1, y1, sx, sy) {
				return blocked(x1, y1+sy)
			}
			ty += sy
			qy -= f1
		}

		for tx != x2 {
			if !project(tx, ty) {
				return blocked(tx, ty)
			}
			qy += m
			switch {
			case qy < f2:
				tx += sx
			case qy > f2:
				ty += sy
				if !project(tx, ty) {
					return blocked(tx, ty)
				}
				qy -= f1
				tx += sx
			default:
				if !corner(tx, ty, sx, sy) {
					return blocked(tx, ty+sy)
				}
				ty += sy
				qy -= f1
				tx += sx
			}
		}
		return true, p2
	}

	// Идем по вертикали
	qx := ax * ax
	m := qx << 1
	ty := y1 + sy
	tx := x1

	if qx == f2 {
		if !corner(x1, y1, sx, sy) {
			return blocked(x1+sx, y1)
		}
		tx += sx
		qx -= f1
	}

	for ty != y2 {
		if !project(tx, ty) {
			return blocked(tx, ty)
		}
		qx += m
		switch {
		case qx < f2:
			ty += sy
		case qx > f2:
			tx += sx
			if !project(tx, ty) {
				return blocked(tx, ty)
			}
			qx -= f1
			ty += sy
		default:
			if !corner(tx, ty, sx, sy) {
				return blocked(tx+sx, ty)
			}
			tx += sx
			qx -= f1
			ty += sy
		}
	}
	return true, p2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
