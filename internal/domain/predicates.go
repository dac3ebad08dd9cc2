package domain

// SquarePredicate - проверка клетки, используется в CountFeats и тестах.
type SquarePredicate func(c *Cave, p Position) bool

// featureAt возвращает описание рельефа клетки или nil за границами.
func (c *Cave) featureAt(p Position) *Feature {
	i := c.idx(p)
	if i < 0 {
		return nil
	}
	return c.Features.Feature(c.feat[i])
}

// Рельеф

func (c *Cave) IsFloor(p Position) bool { return c.featureAt(p).Has(TFFloor) }

// IsRock - обычная гранитная стена (не потайная дверь).
func (c *Cave) IsRock(p Position) bool {
	f := c.featureAt(p)
	return f.Has(TFGranite) && !f.Has(TFDoorAny)
}

// IsPerm - постоянная стена.
func (c *Cave) IsPerm(p Position) bool { return c.featureAt(p).Has(TFPermanent | TFRock) }

func (c *Cave) IsMagma(p Position) bool  { return c.featureAt(p).IsMagma() }
func (c *Cave) IsQuartz(p Position) bool { return c.featureAt(p).IsQuartz() }

// IsMineral - гранит, магма или кварц.
func (c *Cave) IsMineral(p Position) bool {
	return c.IsRock(p) || c.IsMagma(p) || c.IsQuartz(p)
}

// HasGoldVein - жила с сокровищем, найденным или нет.
func (c *Cave) HasGoldVein(p Position) bool { return c.featureAt(p).Has(TFGold) }

// HasSecretVein - жила с еще не найденным сокровищем.
func (c *Cave) HasSecretVein(p Position) bool {
	f := c.featureAt(p)
	return f.Has(TFGold) && !f.Has(TFInteresting)
}

func (c *Cave) IsRubble(p Position) bool {
	f := c.featureAt(p)
	return f.Has(TFRock) && !f.Has(TFWall)
}

// Двери

// IsSecretDoor - потайная дверь: выглядит как гранит.
func (c *Cave) IsSecretDoor(p Position) bool { return c.featureAt(p).Has(TFDoorAny | TFRock) }

func (c *Cave) IsOpenDoor(p Position) bool   { return c.featureAt(p).Has(TFClosable) }
func (c *Cave) IsClosedDoor(p Position) bool { return c.featureAt(p).Has(TFDoorClosed) }

// IsLockedDoor - запертая или заклиненная дверь.
func (c *Cave) IsLockedDoor(p Position) bool {
	f := c.featureAt(p)
	return f.Has(TFDoorLocked) || f.Has(TFDoorJammed)
}

func (c *Cave) IsBrokenDoor(p Position) bool {
	f := c.featureAt(p)
	return f.Has(TFDoorAny|TFPassable) && !f.Has(TFClosable)
}

// IsDoor - любая дверь, включая потайную.
func (c *Cave) IsDoor(p Position) bool { return c.featureAt(p).Has(TFDoorAny) }

// Ловушки

// TrapAt возвращает первую ловушку или руну в клетке.
func (c *Cave) TrapAt(p Position) *Trap {
	if !c.HasInfo(p, SquareTrap) {
		return nil
	}
	for i := range c.Traps {
		if c.Traps[i].Pos == p {
			return &c.Traps[i]
		}
	}
	return nil
}

// IsSecretTrap - в клетке есть ловушка, о которой игрок не знает.
func (c *Cave) IsSecretTrap(p Position) bool {
	t := c.TrapAt(p)
	return t != nil && !t.Visible
}

func (c *Cave) IsKnownTrap(p Position) bool {
	t := c.TrapAt(p)
	return t != nil && t.Visible
}

func (c *Cave) IsTrap(p Position) bool { return c.TrapAt(p) != nil }

// IsWarded - в клетке руна защиты.
func (c *Cave) IsWarded(p Position) bool {
	if !c.HasInfo(p, SquareTrap) {
		return false
	}
	for _, t := range c.Traps {
		if t.Pos == p && t.Rune && t.Kind == RuneProtect {
			return true
		}
	}
	return false
}

func (c *Cave) CanWard(p Position) bool { return c.IsFloor(p) }

// Лестницы и магазины

func (c *Cave) IsStairs(p Position) bool     { return c.featureAt(p).Has(TFStair) }
func (c *Cave) IsUpstairs(p Position) bool   { return c.featureAt(p).Has(TFUpstair) }
func (c *Cave) IsDownstairs(p Position) bool { return c.featureAt(p).Has(TFDownstair) }
func (c *Cave) IsShop(p Position) bool       { return c.featureAt(p).IsShop() }

// ShopNum - номер магазина или -1.
func (c *Cave) ShopNum(p Position) int {
	if !c.IsShop(p) {
		return -1
	}
	return int(c.Feat(p) - FeatShopHead)
}

// Поведение клетки

// IsOpen - пол без монстра.
func (c *Cave) IsOpen(p Position) bool { return c.IsFloor(p) && c.MonsterIdx(p) == 0 }

// IsEmpty - пол без монстра и предметов.
func (c *Cave) IsEmpty(p Position) bool { return c.IsOpen(p) && c.ObjectIdx(p) == 0 }

func (c *Cave) CanPutItem(p Position) bool { return c.IsFloor(p) && c.ObjectIdx(p) == 0 }

// IsDiggable - порода, потайная дверь или завал.
func (c *Cave) IsDiggable(p Position) bool {
	return c.IsMineral(p) || c.IsSecretDoor(p) || c.IsRubble(p)
}

func (c *Cave) IsMonsterWalkable(p Position) bool { return c.featureAt(p).IsPassable() }
func (c *Cave) IsPassable(p Position) bool        { return c.featureAt(p).IsPassable() }
func (c *Cave) IsProjectable(p Position) bool     { return c.featureAt(p).IsProjectable() }

// IsWall - клетка не пропускает снаряды. За границами сетки - стена.
func (c *Cave) IsWall(p Position) bool { return !c.IsProjectable(p) }

// IsStrongWall - порода или постоянная стена (не завал и не дверь).
func (c *Cave) IsStrongWall(p Position) bool { return c.IsMineral(p) || c.IsPerm(p) }

// BlocksSight - рельеф закрывает обзор. За границами сетки - закрывает.
func (c *Cave) BlocksSight(p Position) bool {
	if !c.InBounds(p) {
		return true
	}
	return c.featureAt(p).BlocksSight()
}

// SeemsLikeWall - выглядит как порода.
func (c *Cave) SeemsLikeWall(p Position) bool { return c.featureAt(p).Has(TFRock) }

func (c *Cave) IsBoring(p Position) bool      { return c.InBounds(p) && c.featureAt(p).IsBoring() }
func (c *Cave) IsInteresting(p Position) bool { return c.featureAt(p).Has(TFInteresting) }
func (c *Cave) Noticeable(p Position) bool    { return c.featureAt(p).Has(TFInteresting) }

// Состояние клетки

func (c *Cave) IsVault(p Position) bool { return c.HasInfo(p, SquareVault) }
func (c *Cave) IsRoom(p Position) bool  { return c.HasInfo(p, SquareRoom) }
func (c *Cave) IsView(p Position) bool  { return c.HasInfo(p, SquareView) }
func (c *Cave) IsSeen(p Position) bool  { return c.HasInfo(p, SquareSeen) }
func (c *Cave) WasSeen(p Position) bool { return c.HasInfo(p, SquareTemp) }
func (c *Cave) IsGlow(p Position) bool  { return c.HasInfo(p, SquareGlow) }
func (c *Cave) IsMarked(p Position) bool {
	return c.HasInfo(p, SquareMark)
}

// DTrapEdge - клетка внутри зоны обнаружения ловушек, у которой есть
// сосед вне зоны.
func (c *Cave) DTrapEdge(p Position) bool {
	if !c.HasInfo(p, SquareDTrap) {
		return false
	}
	for d := 0; d < 8; d++ {
		n := p.Neighbor(d)
		if c.InBoundsFully(n) && !c.HasInfo(n, SquareDTrap) {
			return true
		}
	}
	return false
}

// ValidForDestruction - клетку можно разрушить: не постоянная и без артефактов.
func (c *Cave) ValidForDestruction(p Position) bool {
	if !c.InBounds(p) || c.featureAt(p).Has(TFPermanent) {
		return false
	}
	for _, o := range c.ObjectsAt(p) {
		if o.Artifact {
			return false
		}
	}
	return true
}

// ApparentName - имя рельефа, как его видит игрок.
func (c *Cave) ApparentName(p Position) string {
	f := c.featureAt(p)
	if f == nil {
		return "unknown_grid"
	}
	mimic := f.Mimic
	if !c.IsMarked(p) && !c.IsSeen(p) {
		mimic = FeatNone
	}
	if mimic == FeatNone {
		return "unknown_grid"
	}
	if m := c.Features.Feature(mimic); m != nil {
		return m.Name
	}
	return "unknown_grid"
}

// CountFeats считает клетки вокруг center (и под ним, если under),
// которые игрок помнит и которые подходят под test. Возвращает число
// совпадений и позицию последнего.
func CountFeats(c *Cave, center Position, test SquarePredicate, under bool) (int, Position) {
	count := 0
	last := center
	for d := 0; d < 9; d++ {
		if d == 8 && !under {
			continue
		}
		p := center.Neighbor(d)
		if !c.InBoundsFully(p) || !c.IsMarked(p) {
			continue
		}
		if !test(c, p) {
			continue
		}
		count++
		last = p
	}
	return count, last
}
