package dungeon

import (
	"math/rand/v2"
	"slices"

	"cavesight/internal/domain"
	"cavesight/pkg/logger"
	"cavesight/pkg/terrain"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/sirupsen/logrus"
)

func (b *LevelBuilder) randRange(lo, hi int) int {
	return b.rng.IntN(hi-lo+1) + lo
}

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	depth    int
	width    int
	height   int
	features domain.FeatureTable
	rooms    []Rect
	cave     *domain.Cave
	objects  domain.ObjectList
	monsters domain.MonsterList
	start    *domain.Position
	rng      *rand.Rand
	pr       *paths.PathRange
}

// NewLevel создает новый builder для уровня
func NewLevel(depth int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		depth:    depth,
		width:    MapWidth,
		height:   MapHeight,
		features: terrain.Default(),
		objects:  domain.ObjectList{{}}, // индекс 0 не используется
		monsters: domain.MonsterList{{}},
		rng:      rng,
	}
}

// WithSize устанавливает размер карты. Вызывать до построения.
// Карта не бывает меньше самой большой комнаты с рамкой.
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = max(width, MaxSize+3)
	b.height = max(height, MaxSize+3)
	return b
}

// WithFeatures подменяет таблицу рельефа.
func (b *LevelBuilder) WithFeatures(features domain.FeatureTable) *LevelBuilder {
	b.features = features
	return b
}

// ensureCave выделяет сетку, залитую гранитом.
func (b *LevelBuilder) ensureCave() {
	if b.cave != nil {
		return
	}
	b.cave = domain.NewCave(b.width, b.height, b.features)
	b.cave.Depth = b.depth
	b.cave.Each(func(p domain.Position) {
		b.cave.SetFeature(p, domain.FeatWallExtra)
	})
	b.pr = paths.NewPathRange(gruid.NewRange(0, 0, b.width, b.height))
}

// WithRooms генерирует комнаты и соединяет их коридорами
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.ensureCave()

	for try := 0; try < maxRooms*4 && len(b.rooms) < maxRooms; try++ {
		w := b.randRange(MinSize, MaxSize)
		h := b.randRange(MinSize, MaxSize)
		x := b.randRange(1, b.width-w-2)
		y := b.randRange(1, b.height-h-2)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		// Чем глубже, тем реже освещены комнаты
		lit := b.depth <= b.randRange(1, 25)
		b.carveRoom(newRoom, lit)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()
			b.tunnel(domain.Position{X: prevX, Y: prevY}, domain.Position{X: currX, Y: currY})
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

func (b *LevelBuilder) carveRoom(room Rect, lit bool) {
	info := domain.SquareRoom
	if lit {
		info |= domain.SquareGlow
	}
	for y := room.Y; y <= room.Y+room.H; y++ {
		for x := room.X; x <= room.X+room.W; x++ {
			p := domain.Position{X: x, Y: y}
			b.cave.SetInfo(p, info)
			if b.cave.IsPassable(p) || b.cave.IsDoor(p) {
				// Коридор, проложенный раньше, остается проходом
				continue
			}
			if x == room.X || y == room.Y || x == room.X+room.W || y == room.Y+room.H {
				b.cave.SetFeature(p, domain.FeatWallOuter)
			} else {
				b.cave.SetFeature(p, domain.FeatFloor)
			}
		}
	}
}

// tunnel прокладывает коридор кратчайшим по стоимости путем.
// Там, где коридор пересекает стену комнаты, ставится дверь.
func (b *LevelBuilder) tunnel(from, to domain.Position) {
	tp := &tunnelPath{cave: b.cave}
	path := b.pr.AstarPath(tp, toPoint(from), toPoint(to))
	if len(path) == 0 {
		// Не должно происходить: внутренняя область связна
		logger.Log.WithFields(logrus.Fields{
			"component": "dungeon_builder",
			"from":      from,
			"to":        to,
		}).Warn("No path for a tunnel")
		return
	}

	for _, gp := range path {
		p := toPosition(gp)
		switch {
		case b.cave.Feat(p) == domain.FeatWallOuter:
			b.placeDoor(p)
		case !b.cave.IsPassable(p) && !b.cave.IsDoor(p):
			b.cave.TunnelWall(p)
		}
	}
}

// placeDoor ставит дверь случайного вида.
func (b *LevelBuilder) placeDoor(p domain.Position) {
	switch r := b.rng.IntN(100); {
	case r < 15:
		b.cave.AddDoor(p, false)
	case r < 20:
		b.cave.SmashDoor(p)
	case r < 30:
		b.cave.SetFeature(p, domain.FeatSecret)
	case r < 45:
		b.cave.LockDoor(p, b.randRange(1, 7))
	default:
		b.cave.AddDoor(p, true)
	}
}

// WithCave строит пещеру клеточным автоматом и оставляет только
// связную часть, в которой лежит случайная клетка пола.
func (b *LevelBuilder) WithCave() *LevelBuilder {
	b.ensureCave()

	gd := rl.NewGrid(b.width, b.height)
	mgen := rl.MapGen{Rand: b.rng, Grid: gd}
	rules := []rl.CellularAutomataRule{
		{WCutoff1: 5, WCutoff2: 2, Reps: 4, WallsOutOfRange: true},
		{WCutoff1: 5, WCutoff2: 25, Reps: 3, WallsOutOfRange: true},
	}
	pass := func(p gruid.Point) bool {
		return gd.At(p) == cellFloor
	}

	size := 0
	for try := 0; try < caveTries && size < minCaveSize; try++ {
		mgen.CellularAutomataCave(cellWall, cellFloor, 0.42+0.03*float64(b.rng.IntN(3)), rules)
		p, ok := b.randomGridFloor(gd)
		if !ok {
			continue
		}
		b.pr.CCMap(&passPath{passable: pass}, p)
		size = mgen.KeepCC(b.pr, p, cellWall)
	}

	it := gd.Iterator()
	for it.Next() {
		p := toPosition(it.P())
		if it.Cell() == cellFloor && b.cave.InBoundsFully(p) {
			b.cave.SetFeature(p, domain.FeatFloor)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_builder",
		"depth":     b.depth,
		"size":      size,
	}).Debug("Cave generated")
	return b
}

func (b *LevelBuilder) randomGridFloor(gd rl.Grid) (gruid.Point, bool) {
	for try := 0; try < placeTries; try++ {
		p := gruid.Point{X: b.randRange(1, b.width-2), Y: b.randRange(1, b.height-2)}
		if gd.At(p) == cellFloor {
			return p, true
		}
	}
	return gruid.Point{}, false
}

// WithVeins прокладывает n жил магмы или кварца сквозь гранит.
// Изредка в жиле прячется сокровище.
func (b *LevelBuilder) WithVeins(n int) *LevelBuilder {
	b.ensureCave()

	for i := 0; i < n; i++ {
		feat, hidden := domain.FeatMagma, domain.FeatMagmaH
		if b.rng.IntN(2) == 0 {
			feat, hidden = domain.FeatQuartz, domain.FeatQuartzH
		}

		p := domain.Position{X: b.randRange(1, b.width-2), Y: b.randRange(1, b.height-2)}
		dir := b.rng.IntN(8)
		for length := b.randRange(20, 40); length > 0 && b.cave.InBoundsFully(p); length-- {
			for d := 0; d < 9; d++ {
				q := p.Neighbor(d)
				if !b.cave.InBoundsFully(q) || b.cave.Feat(q) != domain.FeatWallExtra || b.rng.IntN(2) == 0 {
					continue
				}
				if b.rng.IntN(20) == 0 {
					b.cave.SetFeature(q, hidden)
				} else {
					b.cave.SetFeature(q, feat)
				}
			}
			if b.rng.IntN(10) == 0 {
				dir = b.rng.IntN(8)
			}
			p = p.Neighbor(dir)
		}
	}
	return b
}

// WithRubble заваливает n клеток коридоров.
func (b *LevelBuilder) WithRubble(n int) *LevelBuilder {
	b.ensureCave()

	for i := 0; i < n; i++ {
		p, ok := b.randomFloor(func(p domain.Position) bool {
			return !b.cave.IsRoom(p)
		})
		if !ok {
			break
		}
		b.cave.SetFeature(p, domain.FeatRubble)
	}
	return b
}

// WithVault превращает одну из средних комнат в хранилище: двери
// становятся потайными, в центре лежит артефакт.
func (b *LevelBuilder) WithVault() *LevelBuilder {
	if len(b.rooms) < 3 {
		return b
	}
	room := b.rooms[b.randRange(1, len(b.rooms)-2)]

	for y := room.Y; y <= room.Y+room.H; y++ {
		for x := room.X; x <= room.X+room.W; x++ {
			p := domain.Position{X: x, Y: y}
			b.cave.SetInfo(p, domain.SquareVault)
			b.cave.ClearInfo(p, domain.SquareGlow)
			if b.cave.IsDoor(p) {
				b.cave.SetFeature(p, domain.FeatSecret)
			}
		}
	}

	keys := make([]string, 0, len(ArtifactTemplates))
	for key := range ArtifactTemplates {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	cx, cy := room.Center()
	b.putObject(ArtifactTemplates[keys[b.rng.IntN(len(keys))]], domain.Position{X: cx, Y: cy})
	return b
}

// GetStartPos возвращает стартовую позицию (центр первой комнаты или
// случайный пол, если комнат нет)
func (b *LevelBuilder) GetStartPos() domain.Position {
	if b.start != nil {
		return *b.start
	}
	b.ensureCave()

	start := domain.Position{X: b.width / 2, Y: b.height / 2}
	if len(b.rooms) > 0 {
		cx, cy := b.rooms[0].Center()
		start = domain.Position{X: cx, Y: cy}
	} else if p, ok := b.randomFloor(nil); ok {
		start = p
	}
	b.start = &start
	return start
}

// PlaceStairs ставит лестницу вверх на старте и лестницу вниз в самой
// дальней (по числу шагов) достижимой клетке пола.
func (b *LevelBuilder) PlaceStairs() *LevelBuilder {
	start := b.GetStartPos()
	if b.depth > 0 {
		b.cave.SetFeature(start, domain.FeatLess)
	}

	pass := func(p gruid.Point) bool {
		q := toPosition(p)
		return b.cave.InBounds(q) && (b.cave.IsPassable(q) || b.cave.IsDoor(q) || b.cave.IsRubble(q))
	}
	const unreachable = 1 << 16
	nodes := b.pr.BreadthFirstMap(&passPath{passable: pass}, []gruid.Point{toPoint(start)}, unreachable)

	far, best := start, 0
	for _, n := range nodes {
		p := toPosition(n.P)
		if n.Cost > best && b.cave.IsFloor(p) {
			far, best = p, n.Cost
		}
	}
	if far != start {
		b.cave.SetFeature(far, domain.FeatMore)
	}
	return b
}

// SpawnMonsters спавнит монстров из шаблона. Монстры глубже своего
// уровня не появляются.
func (b *LevelBuilder) SpawnMonsters(templateName string, count int) *LevelBuilder {
	template, ok := MonsterTemplates[templateName]
	if !ok || b.depth < template.MinDepth {
		return b
	}
	start := b.GetStartPos()

	for i := 0; i < count; i++ {
		p, ok := b.randomFloor(func(p domain.Position) bool {
			// Не в первой комнате
			return len(b.rooms) == 0 || !b.rooms[0].Contains(p)
		})
		if !ok || p == start {
			continue
		}
		b.monsters = append(b.monsters, template.Spawn(p))
		b.cave.SetMonsterIdx(p, int16(len(b.monsters)-1))
	}
	return b
}

// SpawnObjects раскладывает случайные предметы по полу
func (b *LevelBuilder) SpawnObjects(count int) *LevelBuilder {
	b.ensureCave()

	for i := 0; i < count; i++ {
		p, ok := b.randomFloor(nil)
		if !ok {
			break
		}
		b.putObject(RandomLoot(b.rng), p)
	}
	return b
}

// putObject кладет предмет на верх стопки в клетке.
func (b *LevelBuilder) putObject(t ObjectTemplate, p domain.Position) {
	o := t.Spawn(p)
	o.Next = b.cave.ObjectIdx(p)
	b.objects = append(b.objects, o)
	b.cave.SetObjectIdx(p, int16(len(b.objects)-1))
}

// SpawnTraps прячет count ловушек
func (b *LevelBuilder) SpawnTraps(count int) *LevelBuilder {
	b.ensureCave()
	start := b.GetStartPos()

	for i := 0; i < count; i++ {
		p, ok := b.randomFloor(func(p domain.Position) bool {
			return p != start && !b.cave.IsTrap(p)
		})
		if !ok {
			break
		}
		b.cave.AddTrap(p, b.randRange(1, 4), false)
	}
	return b
}

// randomFloor ищет свободную клетку пола, подходящую под ok (если задан).
func (b *LevelBuilder) randomFloor(ok func(domain.Position) bool) (domain.Position, bool) {
	for try := 0; try < placeTries; try++ {
		p := domain.Position{X: b.randRange(1, b.width-2), Y: b.randRange(1, b.height-2)}
		if !b.cave.IsEmpty(p) {
			continue
		}
		if ok == nil || ok(p) {
			return p, true
		}
	}
	return domain.Position{}, false
}

// Build обносит уровень постоянной стеной и возвращает готовый уровень
func (b *LevelBuilder) Build() *Level {
	b.ensureCave()
	start := b.GetStartPos()
	c := b.cave

	c.Each(func(p domain.Position) {
		if !c.InBoundsFully(p) {
			c.SetFeature(p, domain.FeatPermSolid)
		}
	})

	c.Objects = b.objects
	c.Monsters = b.monsters
	c.MoveObserver(start, start)
	c.Live = true

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_builder",
		"depth":     b.depth,
		"rooms":     len(b.rooms),
		"monsters":  len(b.monsters) - 1,
		"objects":   len(b.objects) - 1,
		"traps":     len(c.Traps),
	}).Info("Level built")

	return &Level{
		Cave:     c,
		Start:    start,
		Rooms:    b.rooms,
		Objects:  b.objects,
		Monsters: b.monsters,
	}
}
