package actions

import (
	"fmt"

	"cavesight/internal/domain"
	"cavesight/internal/engine/handlers"
	"cavesight/internal/systems"
	"cavesight/pkg/api"
)

// throwScatter - разброс броска в точку, которую наблюдатель не видит.
const throwScatter = 2

// HandleThrow бросает камень в точку. Цель проверяется так же, как при
// прицеливании; невидимая цель смещается случайно. Камень летит по пути
// снаряда и падает в последней клетке, которая пропускает снаряды.
func HandleThrow(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	c := ctx.Cave
	from := ctx.Observer.Pos
	to := domain.Position{X: p.X, Y: p.Y}

	check := systems.ValidateTarget(c, from, to, domain.MaxRange, false)
	if !check.Valid {
		return handlers.Fail(fmt.Sprintf("Нельзя бросить: %s.", check.Message)), nil
	}

	if !c.IsView(to) {
		to, _ = systems.Scatter(c, ctx.Rng, to, throwScatter)
	}

	path := make([]domain.Position, domain.MaxRange)
	n := systems.ProjectPath(c, path, domain.MaxRange, from, to, systems.ProjectStop)
	if n < 0 {
		n = -n
	}
	landing := from
	for _, q := range path[:n] {
		if !c.IsProjectable(q) {
			break
		}
		landing = q
	}

	return handlers.Info(fmt.Sprintf("Камень падает в %v.", landing)), nil
}
