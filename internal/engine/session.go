package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"cavesight/internal/domain"
	"cavesight/internal/engine/handlers"
	"cavesight/internal/engine/handlers/actions"
	"cavesight/internal/engine/handlers/admin"
	"cavesight/internal/systems"
	"cavesight/pkg/api"
	"cavesight/pkg/dungeon"
	"cavesight/pkg/logger"
	"cavesight/pkg/utils"

	"github.com/sirupsen/logrus"
)

var (
	ErrClosed         = errors.New("session is closed")
	ErrUnknownAction  = errors.New("unknown action")
	ErrCheatsDisabled = errors.New("cheats are disabled")
	ErrBlocked        = errors.New("position is not passable")
)

// TurnStats - итог одного хода.
type TurnStats struct {
	Tick       int                 `json:"tick"`
	View       systems.ViewStats   `json:"view"`
	Noise      systems.NoiseUpdate `json:"noise"`
	Scent      int                 `json:"scent"`      // клеток с обновленным запахом
	Redraws    int                 `json:"redraws"`    // запросов перерисовки за ход
	Remembered int                 `json:"remembered"` // запомненных клеток за ход
}

// turnNotifier считает уведомления сетки за ход.
type turnNotifier struct {
	redraws    int
	remembered int
}

func (n *turnNotifier) RememberCell(domain.Position) { n.remembered++ }
func (n *turnNotifier) RedrawCell(domain.Position)   { n.redraws++ }

func (n *turnNotifier) reset() (redraws, remembered int) {
	redraws, remembered = n.redraws, n.remembered
	n.redraws, n.remembered = 0, 0
	return redraws, remembered
}

// Session владеет одним уровнем и всем состоянием, которое движок
// пересчитывает между ходами: наблюдатель, поле шума, поле запаха.
//
// Ядро однопоточное; мьютекс только сериализует доступ игрового цикла и
// читателей (отладочный сервер).
type Session struct {
	mu sync.Mutex

	ID  string
	cfg Config

	level    *dungeon.Level
	cave     *domain.Cave
	observer domain.Observer
	noise    *systems.NoiseField
	scent    *systems.ScentField
	notifier *turnNotifier

	rng    *rand.Rand
	tick   int
	last   TurnStats
	logs   []api.LogEntry
	replay domain.ReplaySession
	closed bool

	handlers map[domain.ActionType]handlers.HandlerFunc
}

// levelRNG - генератор уровня глубины depth. Уровень зависит только от
// мастер-зерна и глубины.
func levelRNG(seed uint64, depth int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(depth)))
}

// NewSession генерирует первый уровень и создает сессию.
func NewSession(cfg Config) *Session {
	level := dungeon.Generate(cfg.Depth, cfg.Layout, levelRNG(cfg.Seed, cfg.Depth))
	return NewSessionWithLevel(cfg, level)
}

// NewSessionWithLevel создает сессию на готовом уровне и делает первый
// расчет обзора и полей.
func NewSessionWithLevel(cfg Config, level *dungeon.Level) *Session {
	s := &Session{
		ID:       utils.GenerateID(),
		cfg:      cfg,
		notifier: &turnNotifier{},
		rng:      rand.New(rand.NewPCG(cfg.Seed, ^uint64(0))),
		replay:   domain.ReplaySession{Seed: cfg.Seed, Depth: level.Cave.Depth},
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}
	s.observer = *dungeon.NewObserver(level, cfg.LightRadius)
	s.observer.Unlight = cfg.Unlight
	s.install(level)
	s.registerHandlers()

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"seed":      cfg.Seed,
		"depth":     level.Cave.Depth,
		"layout":    cfg.Layout.String(),
	}).Info("Session created")

	s.advance()
	return s
}

func (s *Session) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionThrow] = handlers.WithPayload(actions.HandleThrow)
	s.handlers[domain.ActionDescend] = handlers.WithEmptyPayload(actions.HandleDescend)

	s.handlers[domain.ActionTeleport] = handlers.WithPayload(admin.HandleTeleport)
	s.handlers[domain.ActionWizLight] = handlers.WithEmptyPayload(admin.HandleWizLight)
	s.handlers[domain.ActionWizDark] = handlers.WithEmptyPayload(admin.HandleWizDark)
	s.handlers[domain.ActionMapArea] = handlers.WithPayload(admin.HandleMapArea)
	s.handlers[domain.ActionForget] = handlers.WithEmptyPayload(admin.HandleForget)
}

// install делает level текущим уровнем сессии.
func (s *Session) install(level *dungeon.Level) {
	s.level = level
	s.cave = level.Cave
	s.cave.Notifier = s.notifier
	s.noise = systems.NewNoiseField()
	s.scent = systems.NewScentField()
	s.observer.Pos = level.Start
	if s.cave.Depth == 0 {
		systems.Illuminate(s.cave, !s.cfg.Night)
	}
}

// Close освобождает сетку. Повторный вызов ничего не делает.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cave.Free()
	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"ticks":     s.tick,
	}).Info("Session closed")
}

// MoveObserver переставляет наблюдателя без траты хода. Обзор
// пересчитается в следующем Tick.
func (s *Session) MoveObserver(to domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.cave.InBounds(to) || !s.cave.IsPassable(to) {
		return fmt.Errorf("move observer to %v: %w", to, ErrBlocked)
	}
	s.cave.MoveObserver(s.observer.Pos, to)
	s.observer.Pos = to
	return nil
}

// SetBlind ослепляет или возвращает зрение.
func (s *Session) SetBlind(blind bool) {
	s.mu.Lock()
	s.observer.Blind = blind
	s.mu.Unlock()
}

// Tick проводит ход без действия: обзор, шум, запах.
func (s *Session) Tick() (TurnStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return TurnStats{}, ErrClosed
	}
	return s.advance(), nil
}

// advance пересчитывает обзор, затем поле шума, затем поле запаха.
// Вызывается под мьютексом.
func (s *Session) advance() TurnStats {
	s.tick++
	obs := s.observer.Pos

	view := systems.UpdateView(s.cave, s.observer)
	s.updateMonsters()
	noise := s.noise.Update(s.cave, obs)
	scent := s.scent.Update(s.cave, obs)
	redraws, remembered := s.notifier.reset()

	s.last = TurnStats{
		Tick:       s.tick,
		View:       view,
		Noise:      noise,
		Scent:      scent,
		Redraws:    redraws,
		Remembered: remembered,
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"tick":      s.tick,
		"observer":  obs,
		"seen":      view.Seen,
		"noise":     noise.String(),
	}).Debug("Turn processed")
	return s.last
}

// updateMonsters - монстр виден, если его клетка SEEN.
func (s *Session) updateMonsters() {
	for i := 1; i < len(s.level.Monsters); i++ {
		m := &s.level.Monsters[i]
		m.Visible = s.cave.IsSeen(m.Pos)
	}
}

// Execute выполняет команду. Действия, которые тратят ход, заканчиваются
// пересчетом обзора и полей.
func (s *Session) Execute(cmd domain.InternalCommand) (TurnStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return TurnStats{}, ErrClosed
	}

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return s.last, fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action)
	}
	if cmd.Action.IsCheat() && !s.cfg.Cheats {
		return s.last, fmt.Errorf("%s: %w", cmd.Action, ErrCheatsDisabled)
	}

	ctx := handlers.Context{Cave: s.cave, Observer: &s.observer, Rng: s.rng}
	res, err := handler(ctx, cmd.Payload)
	if err != nil {
		s.AddLog(err.Error(), "ERROR")
		return s.last, fmt.Errorf("%s: %w", cmd.Action, err)
	}
	s.replay.Record(s.tick, cmd)

	if res.Msg != "" {
		s.AddLog(res.Msg, res.MsgType)
	}
	if res.Event != domain.EventNone {
		s.processEvent(res)
	}
	if cmd.Action.SpendsTurn() {
		return s.advance(), nil
	}
	return s.last, nil
}
