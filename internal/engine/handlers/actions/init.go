package actions

import (
	"fmt"

	"cavesight/internal/engine/handlers"
)

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Info(fmt.Sprintf("Глубина %d, карта %dx%d.",
		ctx.Cave.Depth, ctx.Cave.Width, ctx.Cave.Height)), nil
}
