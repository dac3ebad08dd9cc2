package systems

import (
	"fmt"

	"cavesight/internal/domain"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// NoiseUpdate - что сделал очередной пересчет поля шума.
type NoiseUpdate uint8

const (
	NoiseSkipped     NoiseUpdate = iota // наблюдатель недалеко и видит прошлый центр
	NoiseIncremental                    // стерта и перезаполнена часть поля
	NoiseRebuild                        // поле построено заново
)

func (u NoiseUpdate) String() string {
	switch u {
	case NoiseIncremental:
		return "incremental"
	case NoiseRebuild:
		return "rebuild"
	default:
		return "skipped"
	}
}

// frontierSize - вместимость одного кольца BFS: на расстоянии r от
// центра не больше 8r клеток.
const frontierSize = 8 * domain.NoiseStrength

// NoiseField хранит состояние поля шума между ходами. Сами стоимости
// лежат в слое cost уровня: чем ближе к наблюдателю (по числу шагов),
// тем меньше стоимость, 0 - шум сюда не дошел.
//
// Поле не строится каждый ход заново. Пока наблюдатель держится рядом с
// эпицентром, стирается только область вокруг него до прошлого центра
// обновления, а стоимость в новом центре уменьшается на пройденный путь,
// чтобы наклон поля оставался правильным.
type NoiseField struct {
	flowCenter   domain.Position // эпицентр последней полной перестройки
	updateCenter domain.Position // центр последнего обновления
	costAtCenter int

	frontier [2][]domain.Position
}

func NewNoiseField() *NoiseField {
	return &NoiseField{
		frontier: [2][]domain.Position{
			make([]domain.Position, 0, frontierSize),
			make([]domain.Position, 0, frontierSize),
		},
	}
}

func (f *NoiseField) FlowCenter() domain.Position   { return f.flowCenter }
func (f *NoiseField) UpdateCenter() domain.Position { return f.updateCenter }
func (f *NoiseField) CostAtCenter() int             { return f.costAtCenter }

// Update пересчитывает поле шума для наблюдателя в obs.
func (f *NoiseField) Update(c *domain.Cave, obs domain.Position) NoiseUpdate {
	noiseLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "noise_system",
		"observer_pos": obs,
	})

	full := c.Cost(obs) == 0

	if !full {
		if domain.Chebyshev(obs, f.flowCenter) >= domain.NoiseRebuildDist {
			full = true
		} else {
			dist := domain.Chebyshev(obs, f.updateCenter)
			switch {
			case f.costAtCenter-(dist+domain.NoiseLazyDist) <= 0:
				// Уменьшать стоимость в центре больше некуда
				full = true
			case dist < domain.NoiseLazyDist && HasLineOfSight(c, obs, f.updateCenter):
				noiseLogger.Trace("Noise field is fresh, skipping update.")
				return NoiseSkipped
			}
		}
	}

	if !full {
		route := f.erase(c, obs)
		f.costAtCenter -= route
		if f.costAtCenter < 0 {
			full = true
		} else {
			f.updateCenter = obs
		}
	}

	if full {
		f.costAtCenter = domain.NoiseBaseCost
		f.flowCenter = obs
		f.updateCenter = obs
		c.ClearCosts()
	}

	f.propagate(c, obs, full)

	kind := NoiseIncremental
	if full {
		kind = NoiseRebuild
	}
	noiseLogger.WithFields(logrus.Fields{
		"kind":           kind.String(),
		"cost_at_center": f.costAtCenter,
	}).Debug("Noise field updated.")
	return kind
}

// erase стирает поле вокруг obs кольцами, помечая клетки domain.NoiseSentinel,
// пока не встретит прошлый центр обновления. Возвращает число колец.
func (f *NoiseField) erase(c *domain.Cave, obs domain.Position) int {
	cur := append(f.frontier[0][:0], obs)
	next := f.frontier[1][:0]
	route := 0
	found := false

	for cost := 0; cost <= domain.NoiseStrength; cost++ {
		route++
		next = next[:0]

		for _, p := range cur {
			for d := 0; d < 8; d++ {
				n := p.Neighbor(d)
				if !c.InBounds(n) {
					continue
				}
				v := c.Cost(n)
				if v == 0 || v == domain.NoiseSentinel {
					continue
				}
				c.SetCost(n, domain.NoiseSentinel)
				next = pushFrontier(next, n)
				if n == f.updateCenter {
					found = true
				}
			}
		}

		if found {
			break
		}
		cur, next = next, cur
	}
	return route
}

// propagate заполняет поле от obs на domain.NoiseStrength шагов. При
// перестройке идет по всем клеткам без стоимости, кроме глушащих шум,
// при обновлении - только по стертым клеткам.
func (f *NoiseField) propagate(c *domain.Cave, obs domain.Position, full bool) {
	c.SetCost(obs, uint8(f.costAtCenter))

	cur := append(f.frontier[0][:0], obs)
	next := f.frontier[1][:0]

	for cost := f.costAtCenter + 1; cost <= f.costAtCenter+domain.NoiseStrength; cost++ {
		if len(cur) == 0 {
			break
		}
		next = next[:0]

		for _, p := range cur {
			for d := 0; d < 8; d++ {
				n := p.Neighbor(d)
				if !c.InBounds(n) {
					continue
				}
				if full {
					if c.Cost(n) != 0 {
						continue
					}
					// Стены глушат шум, завалы - нет
					if c.Feature(n).Has(domain.TFNoNoise) {
						continue
					}
				} else if c.Cost(n) != domain.NoiseSentinel {
					continue
				}

				c.SetCost(n, uint8(cost))
				next = pushFrontier(next, n)
			}
		}
		cur, next = next, cur
	}
}

func pushFrontier(buf []domain.Position, p domain.Position) []domain.Position {
	if len(buf) == frontierSize {
		panic(fmt.Sprintf("noise: frontier overflow at %v", p))
	}
	return append(buf, p)
}
