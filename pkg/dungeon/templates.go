package dungeon

import (
	"math/rand/v2"
	"slices"

	"cavesight/internal/domain"
)

// MonsterTemplate определяет шаблон монстра
type MonsterTemplate struct {
	Race     int
	Name     string
	Symbol   rune
	MinDepth int // с какой глубины встречается
}

// Spawn создает монстра из шаблона на заданной позиции
func (t MonsterTemplate) Spawn(pos domain.Position) domain.Monster {
	return domain.Monster{Race: t.Race, Pos: pos}
}

// --- МОНСТРЫ ---

var Goblin = MonsterTemplate{
	Race:     1,
	Name:     "Хитрый Гоблин",
	Symbol:   'g',
	MinDepth: 1,
}

var Orc = MonsterTemplate{
	Race:     2,
	Name:     "Свирепый Орк",
	Symbol:   'O',
	MinDepth: 3,
}

var Troll = MonsterTemplate{
	Race:     3,
	Name:     "Каменный Тролль",
	Symbol:   'T',
	MinDepth: 6,
}

var Merchant = MonsterTemplate{
	Race:   4,
	Name:   "Торговец",
	Symbol: 'M',
}

// MonsterTemplates - карта всех монстров подземелья
var MonsterTemplates = map[string]MonsterTemplate{
	"goblin": Goblin,
	"orc":    Orc,
	"troll":  Troll,
}

// NPCTemplates - жители поверхности
var NPCTemplates = map[string]MonsterTemplate{
	"merchant": Merchant,
}

// --- ПРЕДМЕТЫ ---

// ObjectTemplate определяет шаблон предмета
type ObjectTemplate struct {
	Kind     int
	Name     string
	Symbol   rune
	Artifact bool
}

// Spawn создает предмет из шаблона на заданной позиции
func (t ObjectTemplate) Spawn(pos domain.Position) domain.Object {
	return domain.Object{Kind: t.Kind, Pos: pos, Artifact: t.Artifact}
}

var (
	IronSword      = ObjectTemplate{Kind: 1, Name: "Железный меч", Symbol: ')'}
	SteelDagger    = ObjectTemplate{Kind: 2, Name: "Стальной кинжал", Symbol: ')'}
	WoodenClub     = ObjectTemplate{Kind: 3, Name: "Деревянная дубина", Symbol: ')'}
	LeatherArmor   = ObjectTemplate{Kind: 4, Name: "Кожаная броня", Symbol: '['}
	ChainMail      = ObjectTemplate{Kind: 5, Name: "Кольчуга", Symbol: '['}
	PlateArmor     = ObjectTemplate{Kind: 6, Name: "Латная броня", Symbol: '['}
	HealthPotion   = ObjectTemplate{Kind: 7, Name: "Зелье лечения", Symbol: '!'}
	StrengthPotion = ObjectTemplate{Kind: 8, Name: "Зелье силы", Symbol: '!'}
	StaminaPotion  = ObjectTemplate{Kind: 9, Name: "Зелье выносливости", Symbol: '!'}
	Bread          = ObjectTemplate{Kind: 10, Name: "Хлеб", Symbol: ','}
	Meat           = ObjectTemplate{Kind: 11, Name: "Мясо", Symbol: ','}
	GoldCoin       = ObjectTemplate{Kind: 12, Name: "Золотая монета", Symbol: '$'}
	Torch          = ObjectTemplate{Kind: 13, Name: "Факел", Symbol: '~'}
)

// Артефакты: клетку с ними нельзя разрушить
var (
	BloodthirstySword = ObjectTemplate{Kind: 20, Name: "Кровожадный Клинок", Symbol: '|', Artifact: true}
	CowardlyShield    = ObjectTemplate{Kind: 21, Name: "Трусливый Щит", Symbol: '[', Artifact: true}
	GreedyRing        = ObjectTemplate{Kind: 22, Name: "Жадное Кольцо", Symbol: '=', Artifact: true}
)

// ObjectTemplates - карта всех обычных предметов
var ObjectTemplates = map[string]ObjectTemplate{
	// Оружие
	"iron_sword":   IronSword,
	"steel_dagger": SteelDagger,
	"wooden_club":  WoodenClub,

	// Броня
	"leather_armor": LeatherArmor,
	"chain_mail":    ChainMail,
	"plate_armor":   PlateArmor,

	// Зелья
	"health_potion":   HealthPotion,
	"strength_potion": StrengthPotion,
	"stamina_potion":  StaminaPotion,

	// Еда
	"bread": Bread,
	"meat":  Meat,

	// Разное
	"gold":  GoldCoin,
	"torch": Torch,
}

// ArtifactTemplates - предметы для хранилищ
var ArtifactTemplates = map[string]ObjectTemplate{
	"bloodthirsty_sword": BloodthirstySword,
	"cowardly_shield":    CowardlyShield,
	"greedy_ring":        GreedyRing,
}

// LootTable - отсортированный список ключей всех обычных предметов.
// Заполняется при старте программы.
var LootTable []string

func init() {
	for key := range ObjectTemplates {
		LootTable = append(LootTable, key)
	}
	slices.Sort(LootTable)
}

// RandomLoot выбирает случайный обычный предмет.
func RandomLoot(rng *rand.Rand) ObjectTemplate {
	return ObjectTemplates[LootTable[rng.IntN(len(LootTable))]]
}

// MonsterByRace ищет шаблон по расе среди монстров и NPC.
func MonsterByRace(race int) (MonsterTemplate, bool) {
	for _, set := range []map[string]MonsterTemplate{MonsterTemplates, NPCTemplates} {
		for _, t := range set {
			if t.Race == race {
				return t, true
			}
		}
	}
	return MonsterTemplate{}, false
}

// ObjectByKind ищет шаблон предмета по виду.
func ObjectByKind(kind int) (ObjectTemplate, bool) {
	for _, set := range []map[string]ObjectTemplate{ObjectTemplates, ArtifactTemplates} {
		for _, t := range set {
			if t.Kind == kind {
				return t, true
			}
		}
	}
	return ObjectTemplate{}, false
}
