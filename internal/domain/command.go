package domain

import (
	"encoding/json"
	"fmt"
)

// InternalCommand - команда в том виде, в каком ее исполняет движок.
// Action уже разобран из строки, Payload разбирает хендлер.
type InternalCommand struct {
	Action  ActionType
	Token   string // кто прислал: id клиента, "replay", "bot"
	Payload json.RawMessage
}

// NewCommand собирает команду из готовой структуры payload.
// nil payload дает команду без данных.
func NewCommand(action ActionType, token string, payload any) (InternalCommand, error) {
	cmd := InternalCommand{Action: action, Token: token}
	if payload == nil {
		return cmd, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return InternalCommand{}, fmt.Errorf("encode %s payload: %w", action, err)
	}
	cmd.Payload = raw
	return cmd, nil
}
