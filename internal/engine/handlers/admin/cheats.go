package admin

import (
	"fmt"

	"cavesight/internal/domain"
	"cavesight/internal/engine/handlers"
	"cavesight/internal/systems"
	"cavesight/pkg/api"
)

func cheat(msg string) handlers.Result {
	return handlers.Result{Msg: msg, MsgType: "CHEAT"}
}

// HandleTeleport: { "x": 10, "y": 10 }
func HandleTeleport(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	to := domain.Position{X: p.X, Y: p.Y}
	if !ctx.Cave.InBoundsFully(to) || !ctx.Cave.IsPassable(to) || ctx.Cave.MonsterIdx(to) > 0 {
		return handlers.Fail(fmt.Sprintf("Teleport failed: %v is not free", to)), nil
	}
	ctx.MoveObserver(to)
	return cheat("⚡ Teleported via Admin Magic"), nil
}

// HandleWizLight освещает и открывает весь уровень.
func HandleWizLight(ctx handlers.Context) (handlers.Result, error) {
	systems.WizLight(ctx.Cave, true)
	return cheat("☀️ Level lit"), nil
}

// HandleWizDark гасит уровень и стирает память о нем.
func HandleWizDark(ctx handlers.Context) (handlers.Result, error) {
	systems.WizDark(ctx.Cave)
	return cheat("🌑 Level darkened"), nil
}

// HandleMapArea: { "extended": true }
func HandleMapArea(ctx handlers.Context, p api.MapAreaPayload) (handlers.Result, error) {
	n := systems.MapArea(ctx.Cave, ctx.Observer.Pos, p.Extended)
	return cheat(fmt.Sprintf("🗺️ Mapped %d cells", n)), nil
}

// HandleForget сбрасывает обзор: VIEW и SEEN снимаются до следующего хода.
func HandleForget(ctx handlers.Context) (handlers.Result, error) {
	n := systems.ForgetView(ctx.Cave)
	return cheat(fmt.Sprintf("🌫️ View reset on %d cells", n)), nil
}
