package systems

import (
	"math/rand/v2"

	"cavesight/internal/domain"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Lighting - уровень освещения клетки, как его видит игрок.
type Lighting uint8

const (
	LightingLOS   Lighting = iota // в прямой видимости
	LightingTorch                 // освещена факелом игрока
	LightingLit                   // освещена постоянно, но сейчас не видна
	LightingDark                  // темно
)

func (l Lighting) String() string {
	switch l {
	case LightingLOS:
		return "los"
	case LightingTorch:
		return "torch"
	case LightingLit:
		return "lit"
	default:
		return "dark"
	}
}

// NoTrap - в GridData.Trap: ловушки в клетке нет (или о ней не знают).
const NoTrap = -1

// GridData - все, что игрок знает о клетке.
type GridData struct {
	Feat            domain.FeatureID `json:"feat"`
	Trap            int              `json:"trap"`      // индекс в Cave.Traps или NoTrap
	FirstKind       int              `json:"firstKind"` // вид верхнего известного предмета, 0 - нет
	MultipleObjects bool             `json:"multipleObjects"`
	Monster         int16            `json:"monster"` // индекс видимого монстра, 0 - нет
	Lighting        Lighting         `json:"lighting"`
	InView          bool             `json:"inView"`
	IsObserver      bool             `json:"isObserver"`
	Hallucinate     bool             `json:"hallucinate"`
	TrapBorder      bool             `json:"trapBorder"`
}

// MapEnv - опции отображения и состояние игрока, влияющие на MapInfo.
type MapEnv struct {
	ViewYellowLight bool       // клетки, освещенные только факелом, - отдельный уровень
	Hallucinating   bool       // игрок галлюцинирует
	Rng             *rand.Rand // нужен только при галлюцинациях
}

// MapInfo описывает клетку p так, как ее знает игрок.
func MapInfo(c *domain.Cave, p domain.Position, env MapEnv) GridData {
	g := GridData{
		Trap:     NoTrap,
		Lighting: LightingDark,
	}
	if !c.InBounds(p) {
		return g
	}

	info := c.Info(p)
	midx := c.MonsterIdx(p)

	g.InView = info.Has(domain.SquareSeen)
	g.IsObserver = midx < 0
	if !g.IsObserver {
		g.Monster = midx
	}
	g.Hallucinate = env.Hallucinating
	g.TrapBorder = info.Has(domain.SquareDEdge)

	// Игрок видит то, чем клетка притворяется
	if f := c.Feature(p); f != nil {
		g.Feat = f.Mimic
	}

	switch {
	case g.InView:
		g.Lighting = LightingLOS
		if !info.Has(domain.SquareGlow) && env.ViewYellowLight {
			g.Lighting = LightingTorch
		}
	case !info.Has(domain.SquareMark):
		g.Feat = domain.FeatNone
	case info.Has(domain.SquareGlow):
		g.Lighting = LightingLit
	}

	if info.Has(domain.SquareTrap | domain.SquareMark) {
		for i := range c.Traps {
			if c.Traps[i].Pos == p && c.Traps[i].Visible {
				g.Trap = i
				break
			}
		}
	}

	for _, o := range c.ObjectsAt(p) {
		if !o.Marked || o.Ignored {
			continue
		}
		if g.FirstKind == 0 {
			g.FirstKind = o.Kind
			continue
		}
		g.MultipleObjects = true
		break
	}

	if g.Monster > 0 {
		if m := c.Monsters.Monster(g.Monster); m == nil || !m.Visible {
			g.Monster = 0
		}
	}

	// Изредка галлюцинации рисуют что-то на пустом месте. Внешнюю стену
	// проверяем по настоящему рельефу: она маскируется под 0x3C.
	if g.Hallucinate && g.Monster == 0 && g.FirstKind == 0 {
		if env.Rng != nil && env.Rng.IntN(256) == 0 && c.Feat(p) != domain.FeatPermSolid {
			if env.Rng.IntN(100) < 75 {
				g.Monster = 1
			} else {
				g.FirstKind = 1
			}
		} else {
			g.Hallucinate = false
		}
	}

	return g
}

// MapArea картирует окрестность center радиусом domain.DetectRadDefault
// (плюс domain.DetectRadExtra при extended): запоминает все непростые
// проходимые клетки и стены рядом с проходимыми. Возвращает число клеток,
// которые игрок узнал впервые.
func MapArea(c *domain.Cave, center domain.Position, extended bool) int {
	rad := domain.DetectRadDefault
	if extended {
		rad += domain.DetectRadExtra
	}

	learned := 0
	remember := func(p domain.Position) {
		if !c.IsMarked(p) {
			c.SetInfo(p, domain.SquareMark)
			learned++
		}
	}

	for y := center.Y - rad; y <= center.Y+rad; y++ {
		for x := center.X - rad; x <= center.X+rad; x++ {
			p := domain.Position{X: x, Y: y}
			if !c.InBounds(p) || domain.Distance(center, p) > rad {
				continue
			}
			if !c.IsPassable(p) {
				continue
			}

			f := c.Feature(p)
			if !f.Has(domain.TFFloor) || f.Has(domain.TFInteresting) {
				remember(p)
			}

			for d := 0; d < 8; d++ {
				n := p.Neighbor(d)
				if c.InBounds(n) && c.BlocksSight(n) {
					remember(n)
				}
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "mapping_system",
		"center":    center,
		"radius":    rad,
		"learned":   learned,
	}).Debug("Area mapped.")
	return learned
}

// WizLight освещает весь уровень: запоминает предметы на полу и зажигает
// GLOW у всех проходимых клеток и их соседей. Без wizard запоминается все,
// кроме обычного пола (его игрок увидит сам, клетки уже освещены), а
// содержимое хранилищ остается неизвестным. С wizard запоминается все.
func WizLight(c *domain.Cave, wizard bool) {
	for i := int16(1); i < c.Objects.Max(); i++ {
		o := c.Objects.Object(i)
		if o == nil || o.Kind == 0 || o.Held {
			continue
		}
		if !wizard && c.IsVault(o.Pos) {
			continue
		}
		o.Marked = true
	}

	for y := 1; y < c.Height-1; y++ {
		for x := 1; x < c.Width-1; x++ {
			p := domain.Position{X: x, Y: y}
			if !c.IsPassable(p) {
				continue
			}
			for d := 0; d < 9; d++ {
				n := p.Neighbor(d)
				c.SetInfo(n, domain.SquareGlow)

				if !wizard && c.IsVault(n) && c.IsPassable(n) {
					continue
				}
				if wizard || !c.IsFloor(n) || c.IsKnownTrap(n) {
					c.SetInfo(n, domain.SquareMark)
				}
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "mapping_system",
		"wizard":    wizard,
	}).Info("Level lit up.")
}

// WizDark стирает память игрока об уровне: клетки, зоны обнаружения
// ловушек, видимость ловушек и предметов.
func WizDark(c *domain.Cave) {
	c.Each(func(p domain.Position) {
		c.ClearInfo(p, domain.SquareMark|domain.SquareDTrap|domain.SquareDEdge)
	})
	c.HideTraps()

	for i := int16(1); i < c.Objects.Max(); i++ {
		o := c.Objects.Object(i)
		if o == nil || o.Kind == 0 || o.Held {
			continue
		}
		o.Marked = false
	}

	logger.Log.WithField("component", "mapping_system").Info("Level forgotten.")
}

// Illuminate зажигает или гасит поверхность (уровень глубины 0) в
// зависимости от времени суток. Внешние стены города гаснут и
// забываются, стены магазинов и входы в магазины с соседями всегда
// освещены и известны. На глубине ничего не делает.
func Illuminate(c *domain.Cave, daylight bool) {
	if c.Depth != 0 {
		return
	}

	c.Each(func(p domain.Position) {
		switch c.Feat(p) {
		case domain.FeatPermSolid:
			c.ClearInfo(p, domain.SquareGlow|domain.SquareMark)
		case domain.FeatPermExtra:
			c.SetInfo(p, domain.SquareGlow|domain.SquareMark)
		default:
			if daylight {
				c.SetInfo(p, domain.SquareGlow)
			} else {
				c.ClearInfo(p, domain.SquareGlow)
			}
		}
	})

	c.Each(func(p domain.Position) {
		if !c.IsShop(p) {
			return
		}
		for d := 0; d < 9; d++ {
			if n := p.Neighbor(d); c.InBounds(n) {
				c.SetInfo(n, domain.SquareGlow|domain.SquareMark)
			}
		}
	})

	logger.Log.WithFields(logrus.Fields{
		"component": "mapping_system",
		"daylight":  daylight,
	}).Debug("Surface illuminated.")
}
