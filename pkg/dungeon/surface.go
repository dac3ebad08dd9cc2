package dungeon

import (
	"math/rand/v2"

	"cavesight/internal/domain"
)

// Размеры городского квартала
const (
	townWidth  = 66
	townHeight = 22
	shopW      = 6
	shopH      = 4
)

// GenerateSurface создает "домашний" уровень (поверхность): город,
// обнесенный постоянной стеной, с магазинами, деревьями и лестницей вниз.
// Освещение (день или ночь) ставит сессия при входе на уровень.
func GenerateSurface(rng *rand.Rand) *Level {
	b := NewLevel(0, rng).WithSize(townWidth, townHeight)
	b.ensureCave()
	c := b.cave

	c.Each(func(p domain.Position) {
		switch {
		case !c.InBoundsFully(p):
			c.SetFeature(p, domain.FeatPermSolid)
		case rng.IntN(8) == 0:
			c.SetFeature(p, domain.FeatTree)
		case rng.IntN(3) == 0:
			c.SetFeature(p, domain.FeatGrass)
		default:
			c.SetFeature(p, domain.FeatFloor)
		}
	})

	// Главная улица
	road := townHeight / 2
	for x := 1; x < townWidth-1; x++ {
		c.SetFeature(domain.Position{X: x, Y: road}, domain.FeatRoad)
	}

	// Магазины в два ряда над и под улицей, входом к дороге
	shop := domain.FeatShopHead
	for i := 0; shop <= domain.FeatShopHome; i++ {
		x := 3 + (i/2)*(shopW+9)
		y := road - shopH - 2
		if i%2 == 1 {
			y = road + 3
		}
		room := Rect{X: x, Y: y, W: shopW, H: shopH}
		b.buildShop(room, shop, i%2 == 0)
		b.rooms = append(b.rooms, room)
		shop++
	}

	// Лестница вниз в конце улицы
	start := domain.Position{X: 2, Y: road}
	b.start = &start
	c.SetFeature(domain.Position{X: townWidth - 3, Y: road}, domain.FeatMore)

	return b.spawnTownsfolk(4).Build()
}

// buildShop строит здание магазина из постоянной стены. Вход смотрит на
// улицу: вниз для верхнего ряда, вверх для нижнего.
func (b *LevelBuilder) buildShop(r Rect, entrance domain.FeatureID, facesDown bool) {
	for y := r.Y; y <= r.Y+r.H; y++ {
		for x := r.X; x <= r.X+r.W; x++ {
			b.cave.SetFeature(domain.Position{X: x, Y: y}, domain.FeatPermExtra)
		}
	}
	cx, _ := r.Center()
	door := domain.Position{X: cx, Y: r.Y}
	if facesDown {
		door.Y = r.Y + r.H
	}
	b.cave.SetFeature(door, entrance)
}

// spawnTownsfolk расставляет торговцев на дороге и траве.
func (b *LevelBuilder) spawnTownsfolk(count int) *LevelBuilder {
	for i := 0; i < count; i++ {
		for try := 0; try < placeTries; try++ {
			p := domain.Position{X: b.randRange(1, b.width-2), Y: b.randRange(1, b.height-2)}
			if !b.cave.IsPassable(p) || b.cave.IsShop(p) || b.cave.MonsterIdx(p) != 0 || p == *b.start {
				continue
			}
			b.monsters = append(b.monsters, Merchant.Spawn(p))
			b.cave.SetMonsterIdx(p, int16(len(b.monsters)-1))
			break
		}
	}
	return b
}
