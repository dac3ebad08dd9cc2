package systems

import (
	"cavesight/internal/domain"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ViewStats - итог одного пересчета обзора.
type ViewStats struct {
	Radius   int `json:"radius"`
	Viewable int `json:"viewable"` // клеток с VIEW
	Seen     int `json:"seen"`     // клеток с SEEN
	NewSeen  int `json:"newSeen"`  // стали видны в этот ход
	Lost     int `json:"lost"`     // перестали быть видны
}

// LightRadius возвращает радиус освещения наблюдателя для обзора.
// Без источника света существо с темновидением видит на 2 клетки.
// Положительный радиус увеличивается на 1: Distance(p) < radius.
func LightRadius(obs domain.Observer) int {
	radius := obs.LightRadius
	if obs.Unlight && radius <= 0 {
		radius = 2
	}
	if radius > 0 {
		radius++
	}
	return radius
}

// UpdateView пересчитывает VIEW и SEEN всех клеток вокруг наблюдателя.
//
// Клетка получает VIEW, если до нее (или до соседней клетки со стороны
// наблюдателя, если это стена) есть прямая видимость в пределах
// domain.MaxSight. SEEN получают клетки в радиусе света и освещенные (GLOW)
// клетки. У освещенной стены смотрим на клетку перед ней: стена видна,
// только если освещена и та сторона, что обращена к наблюдателю.
//
// Клетки, которые стали видны, запоминаются; изменившиеся перерисовываются.
func UpdateView(c *domain.Cave, obs domain.Observer) ViewStats {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": obs.Pos,
	})

	markWasSeen(c)

	radius := LightRadius(obs)
	stats := ViewStats{Radius: radius}
	fovLogger.WithField("radius", radius).Debug("Starting view update.")

	// Клетка наблюдателя видна всегда
	c.SetInfo(obs.Pos, domain.SquareView)
	if radius > 0 || c.IsGlow(obs.Pos) {
		c.SetInfo(obs.Pos, domain.SquareSeen)
	}

	minX, maxX := max(0, obs.Pos.X-domain.MaxSight), min(c.Width-1, obs.Pos.X+domain.MaxSight)
	minY, maxY := max(0, obs.Pos.Y-domain.MaxSight), min(c.Height-1, obs.Pos.Y+domain.MaxSight)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			updateViewOne(c, domain.Position{X: x, Y: y}, radius, obs.Pos)
		}
	}

	c.Each(func(p domain.Position) {
		updateOne(c, p, obs.Blind, &stats)
	})

	fovLogger.WithFields(logrus.Fields{
		"viewable": stats.Viewable,
		"seen":     stats.Seen,
		"new_seen": stats.NewSeen,
	}).Debug("View update complete.")

	return stats
}

// ForgetView снимает VIEW и SEEN со всех видимых клеток и перерисовывает их.
func ForgetView(c *domain.Cave) int {
	forgotten := 0
	c.Each(func(p domain.Position) {
		if !c.IsView(p) {
			return
		}
		c.ClearInfo(p, domain.SquareView|domain.SquareSeen)
		LightSpot(c, p)
		forgotten++
	})
	return forgotten
}

// NoteSpot запоминает видимую клетку и предметы в ней.
func NoteSpot(c *domain.Cave, p domain.Position) {
	c.NoteSpot(p)
}

// LightSpot просит перерисовать клетку.
func LightSpot(c *domain.Cave, p domain.Position) {
	c.Notifier.RedrawCell(p)
}

// markWasSeen сохраняет SEEN в TEMP и сбрасывает VIEW/SEEN.
func markWasSeen(c *domain.Cave) {
	c.Each(func(p domain.Position) {
		if c.IsSeen(p) {
			c.SetInfo(p, domain.SquareTemp)
		}
		c.ClearInfo(p, domain.SquareView|domain.SquareSeen)
	})
}

// viewWall - закрывает ли клетка обзор. За краем сетки стен нет.
func viewWall(c *domain.Cave, p domain.Position) bool {
	return c.InBounds(p) && c.BlocksSight(p)
}

// towards сдвигает p на шаг к наблюдателю по каждой оси.
func towards(p, obs domain.Position) domain.Position {
	return domain.Position{X: p.X - sign0(p.X-obs.X), Y: p.Y - sign0(p.Y-obs.Y)}
}

func updateViewOne(c *domain.Cave, p domain.Position, radius int, obs domain.Position) {
	d := domain.Distance(p, obs)
	if d > domain.MaxSight {
		return
	}
	lit := d < radius

	// Стена видна, если видна клетка перед ней. Иначе стену вдоль
	// коридора закрывает соседняя стена:
	// #1#############
	// #............@#
	// ###############
	target := p
	if viewWall(c, p) {
		dx, dy := p.X-obs.X, p.Y-obs.Y
		ax, ay := abs(dx), abs(dy)
		sx, sy := sign(dx), sign(dy)

		target = towards(p, obs)

		// Сквозь стену двойной толщины не смотрим
		if viewWall(c, target) {
			target = p
		}

		// Ход конем не дает права смотреть через угол
		switch {
		case ax == 2 && ay == 1:
			if !viewWall(c, p.Shift(-sx, 0)) && viewWall(c, p.Shift(-sx, -sy)) {
				target = p
			}
		case ax == 1 && ay == 2:
			if viewWall(c, p.Shift(0, -sy)) && viewWall(c, p.Shift(-sx, -sy)) {
				target = p
			}
		}
	}

	if HasLineOfSight(c, obs, target) {
		becomeViewable(c, p, lit, obs)
	}
}

func becomeViewable(c *domain.Cave, p domain.Position, lit bool, obs domain.Position) {
	if c.IsView(p) {
		return
	}
	c.SetInfo(p, domain.SquareView)

	if lit {
		c.SetInfo(p, domain.SquareSeen)
	}

	if c.IsGlow(p) {
		front := p
		if viewWall(c, p) {
			front = towards(p, obs)
		}
		if c.IsGlow(front) {
			c.SetInfo(p, domain.SquareSeen)
		}
	}
}

func updateOne(c *domain.Cave, p domain.Position, blind bool, stats *ViewStats) {
	if blind {
		c.ClearInfo(p, domain.SquareSeen)
	}

	seen, was := c.IsSeen(p), c.WasSeen(p)
	switch {
	case seen && !was:
		NoteSpot(c, p)
		LightSpot(c, p)
		stats.NewSeen++
	case !seen && was:
		LightSpot(c, p)
		stats.Lost++
	}
	if seen {
		stats.Seen++
	}
	if c.IsView(p) {
		stats.Viewable++
	}

	c.ClearInfo(p, domain.SquareTemp)
}

func sign0(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
