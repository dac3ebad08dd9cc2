package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionWait
	ActionTeleport
	ActionThrow
	ActionDescend
	ActionWizLight
	ActionWizDark
	ActionMapArea
	ActionForget
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":      ActionInit,
	"MOVE":      ActionMove,
	"WAIT":      ActionWait,
	"TELEPORT":  ActionTeleport,
	"THROW":     ActionThrow,
	"DESCEND":   ActionDescend,
	"WIZ_LIGHT": ActionWizLight,
	"WIZ_DARK":  ActionWizDark,
	"MAP_AREA":  ActionMapArea,
	"FORGET":    ActionForget,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{}

func init() {
	for s, a := range actionStringToCmd {
		actionCmdToString[a] = s
	}
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsCheat - действие доступно только в режиме отладки.
func (a ActionType) IsCheat() bool {
	switch a {
	case ActionTeleport, ActionWizLight, ActionWizDark, ActionMapArea, ActionForget:
		return true
	}
	return false
}

// SpendsTurn - после действия наступает следующий ход (пересчет обзора и полей).
func (a ActionType) SpendsTurn() bool {
	return a != ActionInit && a != ActionUnknown
}
