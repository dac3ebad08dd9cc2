// Package network раздает кадры движка подписчикам: websocket-клиентам
// и агентам. Каждый подписчик получает личный буферизованный канал.
package network

import (
	"sync"
	"sync/atomic"

	"cavesight/pkg/api"
	"cavesight/pkg/logger"
	"cavesight/pkg/utils"
)

// frameBuffer - сколько кадров ждет медленного подписчика.
const frameBuffer = 100

type subscriber struct {
	ch      chan api.Frame
	dropped atomic.Int64
}

// deliver не блокирует: полный канал кадр теряет.
func (s *subscriber) deliver(id string, frame api.Frame) bool {
	select {
	case s.ch <- frame:
		return true
	default:
	}
	// О первом потерянном кадре пишем в лог, дальше только считаем
	if s.dropped.Add(1) == 1 {
		logger.Log.WithField("subscriber", id).Warn("Subscriber is lagging, frames dropped")
	}
	return false
}

// Broadcaster занимается только рассылкой кадров подписчикам
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]*subscriber),
	}
}

// Register создает личный канал подписчика. Старый канал с тем же id
// закрывается.
func (b *Broadcaster) Register(id string) chan api.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old.ch)
	}
	s := &subscriber{ch: make(chan api.Frame, frameBuffer)}
	b.subscribers[id] = s
	return s.ch
}

// RegisterUnique регистрирует подписчика, не трогая занятые id: к
// занятому id добавляется случайный суффикс. Проверка и вставка идут под
// одной блокировкой, поэтому два одновременных входа с одним токеном
// получают разные id.
func (b *Broadcaster) RegisterUnique(id string) (string, chan api.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	unique := id
	for {
		if _, taken := b.subscribers[unique]; !taken {
			break
		}
		unique = id + "_" + utils.GenerateID()[:4]
	}
	s := &subscriber{ch: make(chan api.Frame, frameBuffer)}
	b.subscribers[unique] = s
	return unique, s.ch
}

func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.subscribers[id]; ok {
		close(s.ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет кадр одному подписчику.
func (b *Broadcaster) SendTo(id string, frame api.Frame) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if s, ok := b.subscribers[id]; ok {
		return s.deliver(id, frame)
	}
	return false
}

// Broadcast отправляет всем и возвращает число доставленных кадров.
func (b *Broadcaster) Broadcast(frame api.Frame) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sent := 0
	for id, s := range b.subscribers {
		if s.deliver(id, frame) {
			sent++
		}
	}
	return sent
}

// Dropped - сколько кадров подписчик потерял из-за полного канала.
func (b *Broadcaster) Dropped(id string) int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if s, ok := b.subscribers[id]; ok {
		return s.dropped.Load()
	}
	return 0
}

func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// CloseAll отписывает всех.
func (b *Broadcaster) CloseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subscribers {
		close(s.ch)
		delete(b.subscribers, id)
	}
}
