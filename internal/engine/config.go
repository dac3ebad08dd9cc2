package engine

import (
	"time"

	"cavesight/pkg/dungeon"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни сессии.
	Seed uint64

	// Depth - глубина первого уровня (0 - поверхность).
	Depth  int
	Layout dungeon.Layout

	// Наблюдатель
	LightRadius int
	Unlight     bool

	// Night гасит город на поверхности: светятся только магазины.
	Night bool

	// ViewYellowLight выделяет клетки, освещенные только факелом.
	ViewYellowLight bool

	// Cheats разрешает команды отладки (TELEPORT, WIZ_LIGHT, ...).
	Cheats bool

	// TurnDelay - пауза агента между ходами.
	TurnDelay time.Duration
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:            uint64(time.Now().UnixNano()),
		Depth:           1,
		Layout:          dungeon.LayoutRooms,
		LightRadius:     dungeon.DefaultLightRadius,
		ViewYellowLight: true,
		Cheats:          true,
		TurnDelay:       200 * time.Millisecond,
	}
}
