package engine

import (
	"fmt"

	"cavesight/internal/domain"
	"cavesight/internal/engine/handlers"
	"cavesight/pkg/dungeon"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// processEvent - точка входа для событий, возвращенных хендлерами.
func (s *Session) processEvent(res handlers.Result) {
	switch res.Event {
	case domain.EventLevelTransition:
		s.changeLevel(res.Depth)
	default:
		logger.Log.WithField("event", res.Event).Warn("Unknown event type")
	}
}

// changeLevel освобождает текущий уровень и генерирует уровень depth.
// Поля шума и запаха начинаются заново.
func (s *Session) changeLevel(depth int) {
	old := s.cave.Depth
	s.cave.Free()

	level := dungeon.Generate(depth, s.cfg.Layout, levelRNG(s.cfg.Seed, depth))
	s.install(level)

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"from":      old,
		"to":        depth,
	}).Info("Level transition")
	s.AddLog(fmt.Sprintf("Глубина %d.", depth), "INFO")
}
