package domain

// FeatureID - индекс в таблице рельефа.
type FeatureID uint8

// Известные индексы рельефа. Таблица (pkg/terrain) обязана их описывать,
// остальные индексы свободны.
const (
	FeatNone       FeatureID = 0x00
	FeatFloor      FeatureID = 0x01
	FeatOpen       FeatureID = 0x03
	FeatBroken     FeatureID = 0x04
	FeatMore       FeatureID = 0x05
	FeatLess       FeatureID = 0x06
	FeatDoorHead   FeatureID = 0x20
	FeatDoorTail   FeatureID = 0x2F
	FeatSecret     FeatureID = 0x30
	FeatRubble     FeatureID = 0x31
	FeatMagma      FeatureID = 0x32
	FeatQuartz     FeatureID = 0x33
	FeatMagmaH     FeatureID = 0x34
	FeatQuartzH    FeatureID = 0x35
	FeatMagmaK     FeatureID = 0x36
	FeatQuartzK    FeatureID = 0x37
	FeatWallExtra  FeatureID = 0x38
	FeatWallInner  FeatureID = 0x39
	FeatWallOuter  FeatureID = 0x3A
	FeatWallSolid  FeatureID = 0x3B
	FeatPermExtra  FeatureID = 0x3C
	FeatPermInner  FeatureID = 0x3D
	FeatPermOuter  FeatureID = 0x3E
	FeatPermSolid  FeatureID = 0x3F
	FeatShopHead   FeatureID = 0x40
	FeatShopHome   FeatureID = 0x47
	FeatShopTail   FeatureID = 0x49
	FeatLava       FeatureID = 0x70
	FeatWater      FeatureID = 0x71
	FeatTree       FeatureID = 0x72
	FeatGrass      FeatureID = 0x74
	FeatRoad       FeatureID = 0x75
	FeatVoid       FeatureID = 0x77
	FeatPit        FeatureID = 0x78
	FeatDune       FeatureID = 0x7A
	MaxFeatureID             = 0xFF
)

// Feature - описание одного типа рельефа.
type Feature struct {
	ID       FeatureID
	Name     string
	Mimic    FeatureID // как клетка выглядит для игрока
	Priority int
	Flags    TerrainFlag
}

// FeatureTable - внешний источник описаний рельефа.
// Feature обязана вернуть не-nil для любого индекса, встречающегося на карте.
type FeatureTable interface {
	Feature(id FeatureID) *Feature
}

func (f *Feature) Has(flag TerrainFlag) bool {
	return f != nil && f.Flags.Has(flag)
}

// IsPassable - можно ли пройти сквозь рельеф.
func (f *Feature) IsPassable() bool { return f.Has(TFPassable) }

// IsProjectable - пропускает ли рельеф снаряды.
func (f *Feature) IsProjectable() bool { return f.Has(TFProject) }

// BlocksSight - закрывает ли рельеф обзор.
func (f *Feature) BlocksSight() bool { return !f.Has(TFLos) }

// IsBoring - рельеф не стоит отдельного внимания.
func (f *Feature) IsBoring() bool { return !f.Has(TFInteresting) }

func (f *Feature) IsWall() bool     { return f.Has(TFWall) }
func (f *Feature) IsShop() bool     { return f.Has(TFShop) }
func (f *Feature) IsMagma() bool    { return f.Has(TFMagma) }
func (f *Feature) IsQuartz() bool   { return f.Has(TFQuartz) }
func (f *Feature) IsTreasure() bool { return f.Has(TFGold | TFInteresting) }
