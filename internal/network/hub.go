package network

import (
	"dicedeck-server/pkg/api"
	"dicedeck-server/pkg/logger"
	"sync"

	"github.com/sirupsen/logrus"
)

// Broadcaster занимается только рассылкой снимков подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.ServerResponse
	log         *logrus.Entry
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
		log:         logger.For("hub"),
	}
}

// Register создает личный канал для сессии
func (b *Broadcaster) Register(session string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Переподключение с тем же ID - старый канал закрываем
	if old, ok := b.subscribers[session]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[session] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[session]; ok {
		close(ch)
		delete(b.subscribers, session)
	}
}

// SendTo отправляет снимок одной сессии (Unicast)
func (b *Broadcaster) SendTo(session string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[session]; ok {
		msg.SessionID = session
		select {
		case ch <- msg:
		default:
			b.log.WithField("session", session).Warn("Channel full, update dropped.")
		}
	}
}

// Broadcast отправляет снимок всем сессиям
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for session, ch := range b.subscribers {
		msg.SessionID = session
		select {
		case ch <- msg:
		default:
			b.log.WithField("session", session).Warn("Channel full, update dropped.")
		}
	}
}

func (b *Broadcaster) HasSubscriber(session string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[session]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
