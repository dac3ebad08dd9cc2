// Package agent - автономный исследователь уровня. Бот подключается к
// сервису так же, как клиент по WebSocket: получает кадры из хаба и
// отвечает командами через очередь. Кроме кадров он ничего о мире не знает.
package agent

import (
	"context"
	"encoding/json"
	"time"

	"cavesight/internal/domain"
	"cavesight/internal/engine"
	"cavesight/pkg/api"
	"cavesight/pkg/logger"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/sirupsen/logrus"
)

// stuckLimit - сколько неудачных шагов в клетку, прежде чем бот считает
// ее непроходимой (запертая дверь, монстр).
const stuckLimit = 3

// stairsName - имя рельефа лестницы вниз в кадре.
const stairsName = "down staircase"

// cellState - что бот знает о клетке.
type cellState uint8

const (
	cellUnknown cellState = iota
	cellOpen
	cellWall
)

// Bot исследует уровень: идет к ближайшей границе известного, а когда
// границ не осталось, спускается по лестнице.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> INIT, затем на каждый кадр одна команда.
type Bot struct {
	ID      string
	Service *engine.Service
	Inbox   chan api.Frame
	Delay   time.Duration

	depth, width, height int
	cells                []cellState
	stairs               []domain.Position
	pr                   *paths.PathRange

	pos      domain.Position
	lastTo   domain.Position
	moved    bool
	failed   map[domain.Position]int
	lastTick int
	commands int
}

func NewBot(id string, service *engine.Service, delay time.Duration) *Bot {
	logger.Component("agent").WithField("bot", id).Info("Creating agent")
	return &Bot{
		ID:      id,
		Service: service,
		Delay:   delay,
		Inbox:   service.Hub.Register(id),
		failed:  make(map[domain.Position]int),
	}
}

// Run крутит бота до отмены ctx, закрытия канала или maxCommands команд
// (0 - без ограничения). Возвращает число отправленных команд.
func (b *Bot) Run(ctx context.Context, maxCommands int) int {
	defer b.Service.Hub.Unregister(b.ID)

	b.send(api.ClientCommand{Action: domain.ActionInit.String()})

	for {
		select {
		case <-ctx.Done():
			return b.commands
		case frame, ok := <-b.Inbox:
			if !ok {
				logger.Component("agent").WithField("bot", b.ID).Info("Agent shut down")
				return b.commands
			}
			// Один ход - одна команда: повторный кадр того же хода
			// (например, ответ на INIT) пропускаем
			if frame.Type != "UPDATE" || frame.Tick <= b.lastTick {
				continue
			}
			b.lastTick = frame.Tick
			if maxCommands > 0 && b.commands >= maxCommands {
				return b.commands
			}
			cmd := b.Decide(frame)
			if !b.wait(ctx) {
				return b.commands
			}
			b.send(cmd)
		}
	}
}

// wait выдерживает паузу между ходами. false - контекст отменен.
func (b *Bot) wait(ctx context.Context) bool {
	if b.Delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(b.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (b *Bot) send(cmd api.ClientCommand) {
	cmd.Token = b.ID
	if err := b.Service.ProcessCommand(cmd); err != nil {
		logger.Component("agent").WithField("bot", b.ID).WithError(err).Warn("Command rejected")
		return
	}
	b.commands++
}

// Decide строит по кадру локальную карту и выбирает следующую команду.
func (b *Bot) Decide(frame api.Frame) api.ClientCommand {
	if frame.Observer == nil || frame.Grid == nil {
		return command(domain.ActionWait, nil)
	}
	pos := domain.Position{X: frame.Observer.X, Y: frame.Observer.Y}
	b.learn(frame)

	// Шаг не удался: дверь открылась или клетка занята
	if b.moved && pos == b.pos {
		b.failed[b.lastTo]++
	}
	b.pos, b.moved = pos, false

	if step, ok := b.nextStep(); ok {
		b.lastTo, b.moved = step, true
		return command(domain.ActionMove, api.DirectionPayload{Dx: step.X - pos.X, Dy: step.Y - pos.Y})
	}
	if b.onStairs(pos) {
		return command(domain.ActionDescend, nil)
	}
	return command(domain.ActionWait, nil)
}

// learn пересобирает карту: кадр содержит все, что наблюдатель помнит.
func (b *Bot) learn(frame api.Frame) {
	w, h := frame.Grid.Width, frame.Grid.Height
	if b.pr == nil || w != b.width || h != b.height || frame.Depth != b.depth {
		b.depth, b.width, b.height = frame.Depth, w, h
		b.pr = paths.NewPathRange(gruid.NewRange(0, 0, w, h))
		clear(b.failed)
	}
	b.cells = make([]cellState, w*h)
	b.stairs = b.stairs[:0]

	for _, cv := range frame.Map {
		if cv.X < 0 || cv.Y < 0 || cv.X >= w || cv.Y >= h {
			continue
		}
		st := cellOpen
		if cv.IsWall {
			st = cellWall
		}
		b.cells[cv.Y*w+cv.X] = st
		if cv.Name == stairsName {
			b.stairs = append(b.stairs, domain.Position{X: cv.X, Y: cv.Y})
		}
	}
}

func (b *Bot) state(p gruid.Point) cellState {
	if p.X < 0 || p.Y < 0 || p.X >= b.width || p.Y >= b.height {
		return cellWall
	}
	return b.cells[p.Y*b.width+p.X]
}

// passable - известная открытая клетка, в которую шаги не проваливались.
func (b *Bot) passable(p gruid.Point) bool {
	return b.state(p) == cellOpen && b.failed[domain.Position{X: p.X, Y: p.Y}] < stuckLimit
}

// frontier - открытая клетка рядом с неизвестной.
func (b *Bot) frontier(p gruid.Point) bool {
	var nbs paths.Neighbors
	return len(nbs.All(p, func(q gruid.Point) bool { return b.state(q) == cellUnknown })) > 0
}

func (b *Bot) onStairs(pos domain.Position) bool {
	for _, s := range b.stairs {
		if s == pos {
			return true
		}
	}
	return false
}

// botPath - восьмисвязный обход известных проходимых клеток.
type botPath struct {
	bot *Bot
	nbs paths.Neighbors
}

func (bp *botPath) Neighbors(p gruid.Point) []gruid.Point {
	return bp.nbs.All(p, bp.bot.passable)
}

// nextStep выбирает ближайшую цель (граница известного, иначе лестница)
// и возвращает первый шаг к ней.
func (b *Bot) nextStep() (domain.Position, bool) {
	from := gruid.Point{X: b.pos.X, Y: b.pos.Y}
	const maxCost = 1 << 16
	nodes := b.pr.BreadthFirstMap(&botPath{bot: b}, []gruid.Point{from}, maxCost)

	target, best := from, -1
	for _, n := range nodes {
		if n.P == from || !b.frontier(n.P) {
			continue
		}
		if best < 0 || n.Cost < best {
			target, best = n.P, n.Cost
		}
	}
	if best < 0 {
		// Все изучено: к ближайшей лестнице
		for _, n := range nodes {
			if n.P != from && b.onStairs(domain.Position{X: n.P.X, Y: n.P.Y}) && (best < 0 || n.Cost < best) {
				target, best = n.P, n.Cost
			}
		}
	}
	if best < 0 {
		return b.pos, false
	}

	path := b.pr.JPSPath(nil, from, target, b.passable, true)
	for _, p := range path {
		if p != from {
			return domain.Position{X: p.X, Y: p.Y}, true
		}
	}
	return b.pos, false
}

func command(action domain.ActionType, payload any) api.ClientCommand {
	cmd := api.ClientCommand{Action: action.String()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "agent",
				"action":    action.String(),
			}).WithError(err).Error("Error marshalling payload")
			return api.ClientCommand{Action: domain.ActionWait.String()}
		}
		cmd.Payload = raw
	}
	return cmd
}
