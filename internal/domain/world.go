package domain

import "fmt"

// Cave - сетка одного уровня подземелья. Все слои хранятся плоскими
// массивами в порядке строк, индекс клетки y*Width+x.
type Cave struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"`

	// Live выставляется, когда уровень полностью построен: с этого момента
	// SetFeature уведомляет о перерисовке и запоминании.
	Live bool `json:"live"`

	// Strict превращает любой доступ за границы сетки в панику (режим отладки).
	Strict bool `json:"-"`

	Features FeatureTable `json:"-"`
	Objects  ObjectStore  `json:"-"`
	Monsters MonsterStore `json:"-"`
	Notifier Notifier     `json:"-"`

	Traps []Trap `json:"traps"`

	feat      []FeatureID
	info      []SquareFlag
	cost      []uint8
	when      []uint8
	mIdx      []int16
	oIdx      []int16
	featCount []int
	freed     bool
}

// NewCave выделяет сетку width x height. Все клетки - FeatNone.
func NewCave(width, height int, features FeatureTable) *Cave {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("cave: invalid size %dx%d", width, height))
	}
	n := width * height
	return &Cave{
		Width:     width,
		Height:    height,
		Features:  features,
		Objects:   ObjectList(nil),
		Monsters:  MonsterList(nil),
		Notifier:  NopNotifier{},
		feat:      make([]FeatureID, n),
		info:      make([]SquareFlag, n),
		cost:      make([]uint8, n),
		when:      make([]uint8, n),
		mIdx:      make([]int16, n),
		oIdx:      make([]int16, n),
		featCount: make([]int, MaxFeatureID+1),
	}
}

// Free освобождает слои сетки. Повторный вызов ничего не делает.
// После Free сетка имеет размер 0x0 и любой доступ считается выходом за границы.
func (c *Cave) Free() {
	if c.freed {
		return
	}
	c.freed = true
	c.feat, c.info, c.cost, c.when, c.mIdx, c.oIdx = nil, nil, nil, nil, nil, nil
	c.featCount = nil
	c.Traps = nil
	c.Width, c.Height = 0, 0
}

// Freed сообщает, была ли сетка освобождена.
func (c *Cave) Freed() bool {
	return c.freed
}

// GetIndex возвращает плоский индекс клетки.
func (c *Cave) GetIndex(x, y int) int {
	return y*c.Width + x
}

// InBounds - клетка внутри сетки.
func (c *Cave) InBounds(p Position) bool {
	return p.X >= 0 && p.X < c.Width && p.Y >= 0 && p.Y < c.Height
}

// InBoundsFully - клетка внутри сетки и не на внешнем кольце.
// Алгоритмы, которые смотрят 8 соседей без проверки, требуют именно её.
func (c *Cave) InBoundsFully(p Position) bool {
	return p.X > 0 && p.X < c.Width-1 && p.Y > 0 && p.Y < c.Height-1
}

// idx проверяет границы и возвращает индекс клетки или -1.
func (c *Cave) idx(p Position) int {
	if !c.InBounds(p) {
		if c.Strict {
			panic(fmt.Sprintf("cave: position %v out of bounds %dx%d", p, c.Width, c.Height))
		}
		return -1
	}
	return p.Y*c.Width + p.X
}

// Feat возвращает индекс рельефа клетки (FeatNone за границами).
func (c *Cave) Feat(p Position) FeatureID {
	i := c.idx(p)
	if i < 0 {
		return FeatNone
	}
	return c.feat[i]
}

// Feature возвращает описание рельефа клетки.
func (c *Cave) Feature(p Position) *Feature {
	return c.Features.Feature(c.Feat(p))
}

// SetFeature меняет рельеф клетки, ведет счетчики по типам и, если уровень
// уже живой, запоминает клетку (если она видна) и просит перерисовку.
func (c *Cave) SetFeature(p Position, feat FeatureID) {
	i := c.idx(p)
	if i < 0 {
		return
	}
	if cur := c.feat[i]; cur != FeatNone {
		c.featCount[cur]--
	}
	if feat != FeatNone {
		c.featCount[feat]++
	}
	c.feat[i] = feat

	if c.Live {
		c.NoteSpot(p)
		c.Notifier.RedrawCell(p)
	}
}

// FeatCount - сколько клеток уровня имеют рельеф feat.
func (c *Cave) FeatCount(feat FeatureID) int {
	if c.featCount == nil {
		return 0
	}
	return c.featCount[feat]
}

// NoteSpot запоминает клетку, которую игрок сейчас видит: предметы в ней
// и сам рельеф. Уведомляет внешнего слушателя один раз на вызов.
func (c *Cave) NoteSpot(p Position) {
	i := c.idx(p)
	if i < 0 || !c.info[i].Has(SquareSeen) {
		return
	}
	for o := c.Objects.Object(c.oIdx[i]); o != nil; o = c.Objects.Object(o.Next) {
		o.Marked = true
	}
	c.info[i] |= SquareMark
	c.Notifier.RememberCell(p)
}

// Info возвращает биты состояния клетки.
func (c *Cave) Info(p Position) SquareFlag {
	i := c.idx(p)
	if i < 0 {
		return 0
	}
	return c.info[i]
}

// HasInfo - выставлены ли у клетки биты f.
func (c *Cave) HasInfo(p Position, f SquareFlag) bool {
	return c.Info(p).Has(f)
}

// SetInfo выставляет биты f.
func (c *Cave) SetInfo(p Position, f SquareFlag) {
	if i := c.idx(p); i >= 0 {
		c.info[i] |= f
	}
}

// ClearInfo снимает биты f.
func (c *Cave) ClearInfo(p Position, f SquareFlag) {
	if i := c.idx(p); i >= 0 {
		c.info[i] &^= f
	}
}

// Cost - стоимость шума до наблюдателя (0 - не рассчитана).
func (c *Cave) Cost(p Position) uint8 {
	i := c.idx(p)
	if i < 0 {
		return 0
	}
	return c.cost[i]
}

func (c *Cave) SetCost(p Position, v uint8) {
	if i := c.idx(p); i >= 0 {
		c.cost[i] = v
	}
}

// ClearCosts обнуляет поле шума целиком.
func (c *Cave) ClearCosts() {
	clear(c.cost)
}

// When - возраст запаха (0 - запаха нет).
func (c *Cave) When(p Position) uint8 {
	i := c.idx(p)
	if i < 0 {
		return 0
	}
	return c.when[i]
}

func (c *Cave) SetWhen(p Position, v uint8) {
	if i := c.idx(p); i >= 0 {
		c.when[i] = v
	}
}

// MonsterIdx - индекс монстра в клетке: 0 - пусто, <0 - наблюдатель.
func (c *Cave) MonsterIdx(p Position) int16 {
	i := c.idx(p)
	if i < 0 {
		return 0
	}
	return c.mIdx[i]
}

func (c *Cave) SetMonsterIdx(p Position, v int16) {
	if i := c.idx(p); i >= 0 {
		c.mIdx[i] = v
	}
}

// ObjectIdx - индекс верхнего предмета в клетке, 0 - пусто.
func (c *Cave) ObjectIdx(p Position) int16 {
	i := c.idx(p)
	if i < 0 {
		return 0
	}
	return c.oIdx[i]
}

func (c *Cave) SetObjectIdx(p Position, v int16) {
	if i := c.idx(p); i >= 0 {
		c.oIdx[i] = v
	}
}

// ObjectsAt возвращает предметы стопки в клетке сверху вниз.
func (c *Cave) ObjectsAt(p Position) []*Object {
	var out []*Object
	for o := c.Objects.Object(c.ObjectIdx(p)); o != nil; o = c.Objects.Object(o.Next) {
		out = append(out, o)
	}
	return out
}

// MoveObserver переносит метку наблюдателя в слое монстров.
func (c *Cave) MoveObserver(from, to Position) {
	if c.MonsterIdx(from) < 0 {
		c.SetMonsterIdx(from, 0)
	}
	c.SetMonsterIdx(to, -1)
}

// Each вызывает fn для каждой клетки в порядке строк.
func (c *Cave) Each(fn func(p Position)) {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			fn(Position{X: x, Y: y})
		}
	}
}
