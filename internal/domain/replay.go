package domain

import "encoding/json"

// ReplayAction - это запись одного действия извне (от клиента или агента)
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - журнал сессии в памяти. Зерно и журнал полностью
// определяют состояние: повтор команд на том же зерне дает ту же карту.
type ReplaySession struct {
	Seed    uint64         `json:"seed"`
	Depth   int            `json:"depth"`
	Actions []ReplayAction `json:"actions"`
}

// Record добавляет действие в журнал.
func (r *ReplaySession) Record(tick int, cmd InternalCommand) {
	r.Actions = append(r.Actions, ReplayAction{Tick: tick, Action: cmd.Action, Payload: cmd.Payload})
}
