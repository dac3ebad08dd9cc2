package api

import (
	"errors"
	"fmt"
)

var (
	ErrZeroVector  = errors.New("movement vector cannot be zero")
	ErrStepTooLong = errors.New("movement step too large")
	ErrNegativePos = errors.New("position must not be negative")
)

// Validator реализуют payload-структуры, которым нужна проверка
// до передачи в хендлер.
type Validator interface {
	Validate() error
}

// Check проверяет v, если он реализует Validator. Остальные значения
// считаются корректными.
func Check(v any) error {
	val, ok := v.(Validator)
	if !ok {
		return nil
	}
	if err := val.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Шаг только на соседнюю клетку.
func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return ErrZeroVector
	}
	if max(abs(p.Dx), abs(p.Dy)) > 1 {
		return fmt.Errorf("%w: (%d,%d)", ErrStepTooLong, p.Dx, p.Dy)
	}
	return nil
}

// Границы карты проверяет движок: размер уровня здесь неизвестен.
func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return fmt.Errorf("%w: (%d,%d)", ErrNegativePos, p.X, p.Y)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
