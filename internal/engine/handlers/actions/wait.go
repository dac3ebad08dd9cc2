package actions

import "cavesight/internal/engine/handlers"

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	// Ход проходит: обзор и поля пересчитываются, позиция та же
	return handlers.EmptyResult(), nil
}
