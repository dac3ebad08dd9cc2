package domain

// SquareFlag - биты состояния клетки.
type SquareFlag uint16

const (
	SquareMark  SquareFlag = 1 << iota // игрок помнит рельеф клетки
	SquareGlow                         // клетка освещена постоянно
	SquareVault                        // часть хранилища (vault)
	SquareRoom                         // часть комнаты
	SquareView                         // в прямой видимости
	SquareSeen                         // в прямой видимости и освещена
	SquareTemp                         // служебный флаг update_view: "была видна"
	SquareTrap                         // в клетке ловушка
	SquareDTrap                        // внутри зоны обнаружения ловушек
	SquareDEdge                        // граница зоны обнаружения
)

// Has проверяет, что выставлены все биты f.
func (s SquareFlag) Has(f SquareFlag) bool {
	return s&f == f
}

// TerrainFlag - свойства типа рельефа из таблицы features.
type TerrainFlag uint64

const (
	TFLos         TerrainFlag = 1 << iota // не закрывает обзор
	TFProject                             // пропускает снаряды и заклинания
	TFPassable                            // проходима
	TFInteresting                         // стоит запоминать при картировании
	TFPermanent                           // неразрушима
	TFEasy                                // легко проходима
	TFTrap                                // может содержать ловушку
	TFNoScent                             // не держит запах
	TFNoNoise                             // не проводит шум
	TFObject                              // может содержать предмет
	TFTorch                               // меняет цвет от факела
	TFHidden                              // скрытый рельеф
	TFGold                                // жила с сокровищем
	TFClosable                            // открытая дверь
	TFFloor                               // обычный пол
	TFWall                                // сплошная стена
	TFRock                                // каменная порода
	TFGranite                             // гранит
	TFDoorAny                             // любая дверь
	TFDoorClosed                          // закрытая дверь
	TFDoorLocked                          // запертая дверь
	TFDoorJammed                          // заклиненная дверь
	TFShop                                // вход в магазин
	TFMagma                               // магма
	TFQuartz                              // кварц
	TFStair                               // лестница
	TFUpstair                             // лестница вверх
	TFDownstair                           // лестница вниз
	TFHideObj                             // прячет предметы
	TFBright                              // светится сам
)

// TerrainFlagNames - имена флагов в текстовом формате таблицы рельефа.
var TerrainFlagNames = map[string]TerrainFlag{
	"LOS":         TFLos,
	"PROJECT":     TFProject,
	"PASSABLE":    TFPassable,
	"INTERESTING": TFInteresting,
	"PERMANENT":   TFPermanent,
	"EASY":        TFEasy,
	"TRAP":        TFTrap,
	"NO_SCENT":    TFNoScent,
	"NO_NOISE":    TFNoNoise,
	"OBJECT":      TFObject,
	"TORCH":       TFTorch,
	"HIDDEN":      TFHidden,
	"GOLD":        TFGold,
	"CLOSABLE":    TFClosable,
	"FLOOR":       TFFloor,
	"WALL":        TFWall,
	"ROCK":        TFRock,
	"GRANITE":     TFGranite,
	"DOOR_ANY":    TFDoorAny,
	"DOOR_CLOSED": TFDoorClosed,
	"DOOR_LOCKED": TFDoorLocked,
	"DOOR_JAMMED": TFDoorJammed,
	"SHOP":        TFShop,
	"MAGMA":       TFMagma,
	"QUARTZ":      TFQuartz,
	"STAIR":       TFStair,
	"UPSTAIR":     TFUpstair,
	"DOWNSTAIR":   TFDownstair,
	"HIDE_OBJ":    TFHideObj,
	"BRIGHT":      TFBright,
}

// Has проверяет, что выставлены все биты f.
func (t TerrainFlag) Has(f TerrainFlag) bool {
	return t&f == f
}
