package systems

import "cavesight/internal/domain"

// ProjectFlag меняет поведение ProjectPath.
type ProjectFlag uint8

const (
	ProjectThru  ProjectFlag = 1 << iota // не останавливаться в клетке цели
	ProjectStop                          // остановиться на первом занятом месте
	ProjectCheck                         // отметить занятое место, но лететь дальше
)

// ProjectPath строит путь снаряда из from в to и записывает его в path.
// Стартовая клетка в путь не попадает никогда. По длинной оси снаряд
// проходит одну клетку за шаг; путь заканчивается в клетке цели (если нет
// ProjectThru), в первой клетке, не пропускающей снаряды (она включается),
// у края сетки или по исчерпанию дальности rangeMax.
//
// Возвращает число клеток пути. Если с ProjectCheck по дороге встретился
// монстр или наблюдатель, число возвращается со знаком минус. 0 - только
// когда from == to. path должен вмещать не меньше rangeMax клеток.
func ProjectPath(c *domain.Cave, path []domain.Position, rangeMax int, from, to domain.Position, flags ProjectFlag) int {
	if from == to {
		return 0
	}

	ay, sy := abs(to.Y-from.Y), sign(to.Y-from.Y)
	ax, sx := abs(to.X-from.X), sign(to.X-from.X)

	half := ay * ax   // "половина" клетки в масштабированных единицах
	full := half << 1 // целая клетка
	n, k := 0, 0      // шаги по длинной и по короткой оси
	noticed := false

	// visit записывает клетку и решает, продолжать ли путь
	visit := func(p domain.Position, travelled int) bool {
		path[n] = p
		n++

		if travelled >= rangeMax {
			return false
		}
		if flags&ProjectThru == 0 && p == to {
			return false
		}
		if !c.IsProjectable(p) {
			return false
		}
		occupied := c.MonsterIdx(p) != 0
		if flags&ProjectStop != 0 && occupied {
			return false
		}
		if flags&ProjectCheck != 0 && occupied {
			noticed = true
		}
		return true
	}

	switch {
	case ay > ax:
		// Вертикаль
		frac := ax * ax
		m := frac << 1
		p := domain.Position{X: from.X, Y: from.Y + sy}
		for n < len(path) && c.InBounds(p) {
			if !visit(p, n+1+(k>>1)) {
				break
			}
			if m != 0 {
				frac += m
				if frac >= half {
					p.X += sx
					frac -= full
					k++
				}
			}
			p.Y += sy
		}

	case ax > ay:
		// Горизонталь
		frac := ay * ay
		m := frac << 1
		p := domain.Position{X: from.X + sx, Y: from.Y}
		for n < len(path) && c.InBounds(p) {
			if !visit(p, n+1+(k>>1)) {
				break
			}
			if m != 0 {
				frac += m
				if frac >= half {
					p.Y += sy
					frac -= full
					k++
				}
			}
			p.X += sx
		}

	default:
		// Диагональ
		p := domain.Position{X: from.X + sx, Y: from.Y + sy}
		for n < len(path) && c.InBounds(p) {
			if !visit(p, (n+1)+((n+1)>>1)) {
				break
			}
			p.X += sx
			p.Y += sy
		}
	}

	if noticed {
		return -n
	}
	return n
}

// ProjectResult - результат проверки Projectable.
type ProjectResult uint8

const (
	ProjectNo       ProjectResult = iota // снаряд не долетит
	ProjectNotClear                      // долетит, но чистый выстрел не гарантирован
	ProjectClear                         // долетит, и по дороге никого нет
)

func (r ProjectResult) String() string {
	switch r {
	case ProjectNotClear:
		return "NOT_CLEAR"
	case ProjectClear:
		return "CLEAR"
	default:
		return "NO"
	}
}

// Projectable проверяет, долетит ли снаряд из from в to в пределах
// domain.MaxRange. Ни одна клетка не достижима сама из себя.
func Projectable(c *domain.Cave, from, to domain.Position, flags ProjectFlag) ProjectResult {
	var path [domain.MaxRange]domain.Position

	n := ProjectPath(c, path[:], domain.MaxRange, from, to, flags)
	if n == 0 {
		return ProjectNo
	}

	last := path[abs(n)-1]
	if last != to {
		return ProjectNo
	}
	if !c.IsPassable(last) {
		return ProjectNo
	}

	if flags&(ProjectStop|ProjectCheck) != 0 && n > 0 {
		return ProjectClear
	}
	return ProjectNotClear
}
