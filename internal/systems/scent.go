package systems

import (
	"cavesight/internal/domain"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// scentKernel - прибавка к возрасту запаха вокруг наблюдателя (5x5).
// domain.ScentSkip - клетку не трогать: углы слишком далеко.
var scentKernel = [5][5]uint8{
	{domain.ScentSkip, 2, 2, 2, domain.ScentSkip},
	{2, 1, 1, 1, 2},
	{2, 1, 0, 1, 2},
	{2, 1, 1, 1, 2},
	{domain.ScentSkip, 2, 2, 2, domain.ScentSkip},
}

// ScentField - след запаха наблюдателя. Запах измеряется возрастом:
// каждый ход счетчик уменьшается, и вокруг наблюдателя откладывается
// запах с текущим значением счетчика. Чем меньше значение, тем свежее.
// Когда счетчик доходит до нуля, старая часть следа стирается, а свежая
// сдвигается в конец диапазона.
type ScentField struct {
	when int
}

func NewScentField() *ScentField {
	return &ScentField{}
}

// When - текущее значение счетчика возраста.
func (f *ScentField) When() int { return f.when }

// Update старит запах на один ход и откладывает новый вокруг obs.
// Возвращает число помеченных клеток.
func (f *ScentField) Update(c *domain.Cave, obs domain.Position) int {
	f.when--

	if f.when <= 0 {
		f.renormalize(c)
	}

	marked := 0
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			p := domain.Position{X: obs.X + j - 2, Y: obs.Y + i - 2}
			if !c.InBounds(p) {
				continue
			}
			// Стены, вода и лава запах не держат
			if c.Feature(p).Has(domain.TFNoScent) {
				continue
			}
			if !HasLineOfSight(c, obs, p) {
				continue
			}
			adj := scentKernel[i][j]
			if adj == domain.ScentSkip {
				continue
			}
			c.SetWhen(p, uint8(f.when)+adj)
			marked++
		}
	}
	return marked
}

func (f *ScentField) renormalize(c *domain.Cave) {
	erased := 0
	c.Each(func(p domain.Position) {
		w := c.When(p)
		switch {
		case w == 0:
		case w > domain.SmellStrength:
			c.SetWhen(p, 0)
			erased++
		default:
			c.SetWhen(p, domain.ScentReset+w)
		}
	})
	f.when = domain.ScentReset

	logger.Log.WithFields(logrus.Fields{
		"component": "scent_system",
		"erased":    erased,
	}).Debug("Scent age wrapped around.")
}
