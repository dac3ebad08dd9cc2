package handlers

import (
	"encoding/json"
	"math/rand/v2"

	"cavesight/internal/domain"
)

// Context передает хендлеру состояние сессии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Cave     *domain.Cave
	Observer *domain.Observer
	Rng      *rand.Rand
}

// MoveObserver переставляет наблюдателя вместе с его меткой в слое монстров.
func (ctx Context) MoveObserver(to domain.Position) {
	ctx.Cave.MoveObserver(ctx.Observer.Pos, to)
	ctx.Observer.Pos = to
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сессии напрямую, он возвращает данные.
type Result struct {
	Msg     string           // Текст лога
	MsgType string           // Тип лога (INFO, ERROR, CHEAT)
	Event   domain.EventType // Событие для обработки движком
	Depth   int              // Целевая глубина для EventLevelTransition
}

// HandlerFunc - это контракт для любой команды (MOVE, THROW, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Info и Fail - короткие конструкторы результатов с сообщением.
func Info(msg string) Result { return Result{Msg: msg, MsgType: "INFO"} }
func Fail(msg string) Result { return Result{Msg: msg, MsgType: "ERROR"} }
