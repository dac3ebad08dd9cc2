package actions

import (
	"cavesight/internal/domain"
	"cavesight/internal/engine/handlers"
)

// HandleDescend уводит на следующий уровень, если наблюдатель стоит на
// лестнице вниз. Сам переход выполняет движок по событию.
func HandleDescend(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Cave.IsDownstairs(ctx.Observer.Pos) {
		return handlers.Fail("Здесь нет лестницы вниз."), nil
	}
	return handlers.Result{
		Msg:     "Спуск глубже.",
		MsgType: "INFO",
		Event:   domain.EventLevelTransition,
		Depth:   ctx.Cave.Depth + 1,
	}, nil
}
