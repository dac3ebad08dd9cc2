package domain

// Object - предмет на полу уровня. Хранилище предметов внешнее,
// клетка хранит только индекс верхнего предмета стопки.
type Object struct {
	Kind     int      `json:"kind"`
	Pos      Position `json:"pos"`
	Next     int16    `json:"next"`     // следующий предмет в стопке, 0 - конец
	Held     bool     `json:"held"`     // в руках монстра
	Marked   bool     `json:"marked"`   // игрок знает о предмете
	Ignored  bool     `json:"ignored"`  // скрыт настройками игнорирования
	Artifact bool     `json:"artifact"` // артефакт, клетку нельзя разрушить
}

// ObjectStore - реестр предметов уровня. Индекс 0 не используется.
type ObjectStore interface {
	Object(idx int16) *Object
	Max() int16
}

// ObjectList - простая реализация ObjectStore на слайсе.
type ObjectList []Object

func (l ObjectList) Object(idx int16) *Object {
	if idx <= 0 || int(idx) >= len(l) {
		return nil
	}
	return &l[idx]
}

func (l ObjectList) Max() int16 {
	return int16(len(l))
}

// Monster - монстр на уровне.
type Monster struct {
	Race    int      `json:"race"`
	Pos     Position `json:"pos"`
	Visible bool     `json:"visible"` // виден игроку в этот ход
}

// MonsterStore - реестр монстров уровня. Индекс 0 не используется.
type MonsterStore interface {
	Monster(idx int16) *Monster
}

// MonsterList - простая реализация MonsterStore на слайсе.
type MonsterList []Monster

func (l MonsterList) Monster(idx int16) *Monster {
	if idx <= 0 || int(idx) >= len(l) {
		return nil
	}
	return &l[idx]
}

// Trap - ловушка или руна в клетке.
type Trap struct {
	Kind    int      `json:"kind"`
	Pos     Position `json:"pos"`
	Visible bool     `json:"visible"`
	Rune    bool     `json:"rune"`
}

// RuneProtect - вид руны защиты (ward).
const RuneProtect = 1

// Notifier получает уведомления о клетках: "запомни" и "перерисуй".
// Вызовы синхронные, результат не ожидается.
type Notifier interface {
	RememberCell(p Position)
	RedrawCell(p Position)
}

// NopNotifier игнорирует уведомления.
type NopNotifier struct{}

func (NopNotifier) RememberCell(Position) {}
func (NopNotifier) RedrawCell(Position)   {}

// Observer - состояние наблюдателя (игрока), которое читает движок.
type Observer struct {
	Pos           Position `json:"pos"`
	LightRadius   int      `json:"lightRadius"`
	Blind         bool     `json:"blind"`
	Unlight       bool     `json:"unlight"` // видит в темноте без источника света
	Hallucinating bool     `json:"hallucinating"`
}
