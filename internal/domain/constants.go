package domain

// Радиусы восприятия
const (
	MaxSight         = 20 // дальность обзора
	MaxRange         = 20 // дальность снарядов
	DetectRadDefault = 30 // радиус картирования
	DetectRadExtra   = 10 // прибавка к радиусу при расширенном картировании
)

// Параметры шума и запаха
const (
	NoiseStrength    = 45  // на сколько шагов от игрока распространяется шум
	NoiseBaseCost    = 100 // стоимость в клетке игрока после полной перестройки
	NoiseRebuildDist = 15  // отход от эпицентра, после которого поле строится заново
	NoiseLazyDist    = 5   // отход, на котором поле можно не пересчитывать
	NoiseSentinel    = 255 // временная метка стертой клетки

	SmellStrength = 60  // сколько ходов держится запах
	ScentReset    = 250 - SmellStrength
	ScentSkip     = 250 // в ядре запаха: клетку не трогать
)

// ScatterTries - сколько случайных точек перебирает Scatter до отказа.
const ScatterTries = 1000
