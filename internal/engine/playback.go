package engine

import (
	"fmt"

	"cavesight/internal/domain"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Playback заново проигрывает журнал на новой сессии с тем же зерном и
// глубиной. Команды уровня сессии (MoveObserver, SetBlind) в журнал не
// попадают, поэтому журнал сессии, где они вызывались, может разойтись.
func Playback(cfg Config, replay domain.ReplaySession) (*Session, error) {
	cfg.Seed = replay.Seed
	cfg.Depth = replay.Depth
	s := NewSession(cfg)

	for i, a := range replay.Actions {
		if tick := s.Last().Tick; tick != a.Tick {
			s.Close()
			return nil, fmt.Errorf("replay diverged at action %d (%s): tick %d, journal %d",
				i, a.Action, tick, a.Tick)
		}
		cmd := domain.InternalCommand{Action: a.Action, Token: "replay", Payload: a.Payload}
		if _, err := s.Execute(cmd); err != nil {
			s.Close()
			return nil, fmt.Errorf("replay action %d (%s): %w", i, a.Action, err)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "playback",
		"session":   s.ID,
		"actions":   len(replay.Actions),
		"tick":      s.Last().Tick,
	}).Info("Replay finished")
	return s, nil
}
