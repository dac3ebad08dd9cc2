package dungeon

import "cavesight/internal/domain"

// Стартовый свет наблюдателя: факел
const DefaultLightRadius = 2

// NewObserver создает наблюдателя на стартовой позиции уровня.
// light <= 0 означает наблюдателя без источника света.
func NewObserver(level *Level, light int) *domain.Observer {
	return &domain.Observer{
		Pos:         level.Start,
		LightRadius: max(light, 0),
	}
}
