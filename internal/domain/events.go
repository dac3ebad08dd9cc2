package domain

// EventType - событие, которое хендлер просит обработать движок после
// команды. Хендлер меняет только текущий уровень; все, что выходит за его
// пределы, идет через события.
type EventType uint8

const (
	EventNone EventType = iota
	// EventLevelTransition: освободить уровень и построить новый на
	// глубине из Result.Depth.
	EventLevelTransition
)

func (e EventType) String() string {
	switch e {
	case EventNone:
		return "NONE"
	case EventLevelTransition:
		return "LEVEL_TRANSITION"
	}
	return "UNKNOWN"
}
