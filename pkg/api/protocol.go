package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Frame - снимок сессии, который сервер рассылает подписчикам после
// каждого хода. Содержит только то, что знает наблюдатель.
type Frame struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Tick номер хода сессии.
	Tick int `json:"tick"`

	SessionID string `json:"sessionId"`
	Depth     int    `json:"depth"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	Observer *ObserverView `json:"observer,omitempty"`

	// Map клетки в обзоре и клетки, которые наблюдатель помнит.
	Map []CellView `json:"map,omitempty"`

	// Turn статистика последнего хода.
	Turn *TurnView `json:"turn,omitempty"`

	// Logs новые сообщения с прошлого кадра.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// ObserverView - состояние наблюдателя.
type ObserverView struct {
	X           int  `json:"x"`
	Y           int  `json:"y"`
	LightRadius int  `json:"lightRadius"`
	Blind       bool `json:"blind,omitempty"`
}

// CellView описывает одну клетку так, как ее знает наблюдатель.
type CellView struct {
	X int `json:"x"`
	Y int `json:"y"`

	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// Name видимое имя рельефа (с учетом маскировки).
	Name string `json:"name"`

	// Lighting: los, torch, lit, dark.
	Lighting string `json:"lighting"`

	// IsWall клетку не пройти (закрытые двери и завалы проходимы).
	IsWall bool `json:"isWall"`

	// IsVisible клетка в обзоре. Если false, клетка рисуется по памяти.
	IsVisible bool `json:"isVisible"`

	HasMonster bool `json:"hasMonster,omitempty"`
	HasObject  bool `json:"hasObject,omitempty"`
	HasTrap    bool `json:"hasTrap,omitempty"`
}

// TurnView - итог одного хода.
type TurnView struct {
	Seen    int    `json:"seen"`
	NewSeen int    `json:"newSeen"`
	Lost    int    `json:"lost"`
	Noise   string `json:"noise"` // rebuild, incremental, skip
	Scent   int    `json:"scent"` // клеток с обновленным запахом
}

// LogEntry представляет одну запись в логе сессии.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ERROR, CHEAT
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// LayerView - числовой слой сетки (шум, запах) для отладки.
// Values хранится построчно, индекс y*Width+x.
type LayerView struct {
	Name   string `json:"name"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Values []int  `json:"values"`
}

// CaveSummary - сводка по уровню для /debug/cave.
type CaveSummary struct {
	SessionID string         `json:"sessionId"`
	Tick      int            `json:"tick"`
	Depth     int            `json:"depth"`
	Grid      GridMeta       `json:"grid"`
	Marked    int            `json:"marked"`
	Viewed    int            `json:"viewed"`
	Seen      int            `json:"seen"`
	Glowing   int            `json:"glowing"`
	Traps     int            `json:"traps"`
	Features  map[string]int `json:"features"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор клиента, используется только в логах.
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload используется для TELEPORT и THROW.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MapAreaPayload используется для MAP_AREA.
type MapAreaPayload struct {
	Extended bool `json:"extended"`
}
