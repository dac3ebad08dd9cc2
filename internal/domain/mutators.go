package domain

import "math/rand/v2"

// Изменения рельефа. Все идут через SetFeature, чтобы счетчики и
// запоминание клеток оставались согласованными.

func (c *Cave) OpenDoor(p Position)  { c.SetFeature(p, FeatOpen) }
func (c *Cave) CloseDoor(p Position) { c.SetFeature(p, FeatDoorHead) }
func (c *Cave) SmashDoor(p Position) { c.SetFeature(p, FeatBroken) }

// LockDoor запирает дверь с силой замка power (0..7).
func (c *Cave) LockDoor(p Position, power int) {
	c.SetFeature(p, FeatDoorHead+FeatureID(power&0x07))
}

// UnlockDoor снимает замок. Для незапертой двери ничего не делает.
func (c *Cave) UnlockDoor(p Position) {
	if !c.IsLockedDoor(p) {
		return
	}
	c.SetFeature(p, FeatDoorHead)
}

// DoorPower - сила замка двери.
func (c *Cave) DoorPower(p Position) int {
	return int(c.Feat(p)-FeatDoorHead) & 0x07
}

func (c *Cave) DestroyDoor(p Position) {
	if c.IsDoor(p) {
		c.SetFeature(p, FeatFloor)
	}
}

func (c *Cave) TunnelWall(p Position)  { c.SetFeature(p, FeatFloor) }
func (c *Cave) DestroyWall(p Position) { c.SetFeature(p, FeatFloor) }

func (c *Cave) DestroyRubble(p Position) {
	if c.IsRubble(p) {
		c.SetFeature(p, FeatFloor)
	}
}

// AddDoor ставит закрытую или открытую дверь.
func (c *Cave) AddDoor(p Position, closed bool) {
	if closed {
		c.SetFeature(p, FeatDoorHead)
		return
	}
	c.SetFeature(p, FeatOpen)
}

func (c *Cave) ForceFloor(p Position) { c.SetFeature(p, FeatFloor) }

// ShowVein делает скрытое сокровище в жиле видимым.
func (c *Cave) ShowVein(p Position) {
	switch c.Feat(p) {
	case FeatMagmaH:
		c.SetFeature(p, FeatMagmaK)
	case FeatQuartzH:
		c.SetFeature(p, FeatQuartzK)
	}
}

// UpgradeMineral добавляет видимое сокровище в обычную жилу.
func (c *Cave) UpgradeMineral(p Position) {
	switch c.Feat(p) {
	case FeatMagma:
		c.SetFeature(p, FeatMagmaK)
	case FeatQuartz:
		c.SetFeature(p, FeatQuartzK)
	}
}

// Destroy заменяет клетку обломками взрыва: чаще пол, иногда порода.
func (c *Cave) Destroy(p Position, rng *rand.Rand) {
	feat := FeatFloor
	switch r := rng.IntN(200); {
	case r < 20:
		feat = FeatWallExtra
	case r < 70:
		feat = FeatQuartz
	case r < 100:
		feat = FeatMagma
	}
	c.SetFeature(p, feat)
}

// Earthquake: непроходимая клетка становится полом, проходимая - породой.
func (c *Cave) Earthquake(p Position, rng *rand.Rand) {
	if !c.IsPassable(p) {
		c.SetFeature(p, FeatFloor)
		return
	}
	feat := FeatMagma
	switch t := rng.IntN(100); {
	case t < 20:
		feat = FeatWallExtra
	case t < 70:
		feat = FeatQuartz
	}
	c.SetFeature(p, feat)
}

// AddTrap кладет ловушку вида kind в клетку.
func (c *Cave) AddTrap(p Position, kind int, visible bool) {
	if !c.InBounds(p) {
		return
	}
	c.Traps = append(c.Traps, Trap{Kind: kind, Pos: p, Visible: visible})
	c.SetInfo(p, SquareTrap)
}

// DestroyTrap убирает из клетки все ловушки, кроме рун.
func (c *Cave) DestroyTrap(p Position) {
	c.removeTraps(p, func(t Trap) bool { return !t.Rune })
}

// AddWard ставит руну защиты.
func (c *Cave) AddWard(p Position) {
	if !c.InBounds(p) {
		return
	}
	c.Traps = append(c.Traps, Trap{Kind: RuneProtect, Pos: p, Visible: true, Rune: true})
	c.SetInfo(p, SquareTrap)
}

// RemoveWard убирает руну защиты, если она есть.
func (c *Cave) RemoveWard(p Position) {
	c.removeTraps(p, func(t Trap) bool { return t.Rune && t.Kind == RuneProtect })
}

func (c *Cave) removeTraps(p Position, match func(Trap) bool) {
	kept := c.Traps[:0]
	left := false
	for _, t := range c.Traps {
		if t.Pos == p && match(t) {
			continue
		}
		if t.Pos == p {
			left = true
		}
		kept = append(kept, t)
	}
	c.Traps = kept
	if !left {
		c.ClearInfo(p, SquareTrap)
	}
}

// HideTraps делает все ловушки уровня невидимыми.
func (c *Cave) HideTraps() {
	for i := range c.Traps {
		if !c.Traps[i].Rune {
			c.Traps[i].Visible = false
		}
	}
}
