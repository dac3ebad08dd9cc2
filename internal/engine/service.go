package engine

import (
	"context"
	"errors"
	"fmt"

	"cavesight/internal/domain"
	"cavesight/internal/network"
	"cavesight/pkg/api"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// commandBuffer - размер очереди команд.
const commandBuffer = 100

var ErrQueueFull = errors.New("command queue is full")

// Service - игровой цикл вокруг одной сессии: принимает команды из
// очереди, выполняет их по одной и рассылает кадры подписчикам.
type Service struct {
	Session     *Session
	Hub         *network.Broadcaster
	CommandChan chan domain.InternalCommand
}

func NewService(cfg Config) *Service {
	return NewServiceWithSession(NewSession(cfg))
}

func NewServiceWithSession(session *Session) *Service {
	return &Service{
		Session:     session,
		Hub:         network.NewBroadcaster(),
		CommandChan: make(chan domain.InternalCommand, commandBuffer),
	}
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, агент).
// Команда только ставится в очередь, выполнит ее Run.
func (s *Service) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("%w: %q", ErrUnknownAction, externalCmd.Action)
	}

	select {
	case s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
		return nil
	default:
		logger.Log.WithField("action", actionType).Warn("Command queue full")
		return ErrQueueFull
	}
}

// Run крутит игровой цикл до отмены ctx.
func (s *Service) Run(ctx context.Context) {
	logger.Log.WithField("session", s.Session.ID).Info("Game loop started")
	s.Publish()

	for {
		select {
		case <-ctx.Done():
			logger.Log.WithField("session", s.Session.ID).Info("Game loop stopped")
			return
		case cmd := <-s.CommandChan:
			s.execute(cmd)
		}
	}
}

func (s *Service) execute(cmd domain.InternalCommand) {
	stats, err := s.Session.Execute(cmd)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "game_loop",
			"action":    cmd.Action.String(),
			"token":     cmd.Token,
		}).WithError(err).Warn("Command failed")
	} else {
		logger.Log.WithFields(logrus.Fields{
			"component": "game_loop",
			"action":    cmd.Action.String(),
			"tick":      stats.Tick,
		}).Debug("Command executed")
	}
	s.Publish()
}

// Publish рассылает текущий кадр всем подписчикам.
func (s *Service) Publish() {
	s.Hub.Broadcast(s.Session.Frame())
}

// Close отписывает всех и закрывает сессию.
func (s *Service) Close() {
	s.Hub.CloseAll()
	s.Session.Close()
}
