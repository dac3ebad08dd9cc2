package dungeon

import (
	"fmt"
	"math/rand/v2"

	"cavesight/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 80
	MapHeight = 40
	MaxRooms  = 12
	MinSize   = 4
	MaxSize   = 10

	// minCaveSize - меньше клеток в пещере быть не должно
	minCaveSize = 400
	caveTries   = 20
	placeTries  = 1000
)

// Rect - Вспомогательная структура для комнаты.
// Стены комнаты лежат на границе прямоугольника, пол - внутри.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Contains - клетка внутри комнаты (включая стены).
func (r Rect) Contains(p domain.Position) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Layout - основной алгоритм построения уровня.
type Layout uint8

const (
	LayoutRooms Layout = iota // комнаты и коридоры
	LayoutCave                // клеточный автомат
)

func (l Layout) String() string {
	switch l {
	case LayoutCave:
		return "cave"
	default:
		return "rooms"
	}
}

// ParseLayout разбирает имя алгоритма из конфигурации.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "rooms", "":
		return LayoutRooms, nil
	case "cave":
		return LayoutCave, nil
	}
	return LayoutRooms, fmt.Errorf("unknown layout %q", s)
}

// Level - готовый уровень.
type Level struct {
	Cave     *domain.Cave
	Start    domain.Position
	Rooms    []Rect
	Objects  domain.ObjectList
	Monsters domain.MonsterList
}

// Generate создает новый уровень глубины depth. Глубина 0 - поверхность.
func Generate(depth int, layout Layout, rng *rand.Rand) *Level {
	if depth == 0 {
		return GenerateSurface(rng)
	}

	b := NewLevel(depth, rng)
	switch layout {
	case LayoutCave:
		b.WithCave()
	default:
		b.WithRooms(MaxRooms).WithVault()
	}

	return b.
		WithVeins(3 + depth/5).
		WithRubble(4).
		PlaceStairs().
		SpawnMonsters("goblin", 3).
		SpawnMonsters("orc", 2).
		SpawnMonsters("troll", 1).
		SpawnObjects(6 + depth/4).
		SpawnTraps(2 + depth/3).
		Build()
}
