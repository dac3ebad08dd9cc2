package actions

import (
	"cavesight/internal/engine/handlers"
	"cavesight/pkg/api"
)

// HandleMove делает шаг. Закрытую дверь шаг открывает (запертую - нет),
// занятая монстром клетка и стены останавливают.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	c := ctx.Cave
	to := ctx.Observer.Pos.Shift(p.Dx, p.Dy)

	switch {
	case !c.InBoundsFully(to):
		return handlers.Fail("Край карты."), nil
	case c.IsLockedDoor(to):
		return handlers.Fail("Дверь заперта."), nil
	case c.IsClosedDoor(to):
		c.OpenDoor(to)
		return handlers.Info("Дверь открыта."), nil
	case c.IsRubble(to):
		c.DestroyRubble(to)
		return handlers.Info("Завал разобран."), nil
	case !c.IsPassable(to):
		return handlers.Fail("Путь прегражден."), nil
	case c.MonsterIdx(to) > 0:
		return handlers.Fail("Клетка занята."), nil
	}

	ctx.MoveObserver(to)
	return handlers.EmptyResult(), nil
}
