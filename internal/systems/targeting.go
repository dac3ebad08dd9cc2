package systems

import (
	"math/rand/v2"

	"cavesight/internal/domain"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// randSpread - равномерно случайное число в [v-d, v+d].
func randSpread(rng *rand.Rand, v, d int) int {
	if d <= 0 {
		return v
	}
	return v - d + rng.IntN(2*d+1)
}

// Scatter подбирает случайную клетку рядом с origin: не на краю сетки,
// не дальше d (при d > 1) и в прямой видимости из origin.
//
// После domain.ScatterTries неудачных попыток возвращает (origin, false).
func Scatter(c *domain.Cave, rng *rand.Rand, origin domain.Position, d int) (domain.Position, bool) {
	for try := 0; try < domain.ScatterTries; try++ {
		p := domain.Position{
			X: randSpread(rng, origin.X, d),
			Y: randSpread(rng, origin.Y, d),
		}

		if !c.InBoundsFully(p) {
			continue
		}
		if d > 1 && domain.Distance(origin, p) > d {
			continue
		}
		if HasLineOfSight(c, origin, p) {
			return p, true
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "targeting_system",
		"origin":    origin,
		"distance":  d,
		"tries":     domain.ScatterTries,
	}).Warn("Scatter found no location")
	return origin, false
}

// ValidationResult - результат проверки цели.
type ValidationResult struct {
	Valid   bool
	Result  ProjectResult
	Message string // причина отказа, если Valid == false
}

// ValidateTarget проверяет, можно ли прицелиться из from в to.
//
// Параметры:
// - rangeLimit: максимальная дистанция (по domain.Distance).
// - needClear: нужен ли чистый выстрел (никого на пути).
func ValidateTarget(c *domain.Cave, from, to domain.Position, rangeLimit int, needClear bool) ValidationResult {
	if !c.InBounds(to) {
		return ValidationResult{Message: "target out of bounds"}
	}
	if domain.Distance(from, to) > rangeLimit {
		return ValidationResult{Message: "target too far"}
	}

	flags := ProjectFlag(0)
	if needClear {
		flags = ProjectCheck
	}
	res := Projectable(c, from, to, flags)
	switch {
	case res == ProjectNo:
		return ValidationResult{Result: res, Message: "target not projectable"}
	case needClear && res != ProjectClear:
		return ValidationResult{Result: res, Message: "line of fire is blocked"}
	}
	return ValidationResult{Valid: true, Result: res}
}
