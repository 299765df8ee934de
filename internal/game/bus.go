package game

import "dicedeck-server/internal/domain"

// Bus - синхронная шина событий.
// Обработчики вызываются сразу в Publish, строго в порядке подписки.
type Bus struct {
	handlers map[domain.EventType][]func(domain.Event)
	// sink видит все события раньше обработчиков (журнал для снапшотов)
	sink func(domain.Event)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[domain.EventType][]func(domain.Event))}
}

// Subscribe добавляет обработчик события
func (b *Bus) Subscribe(t domain.EventType, fn func(domain.Event)) {
	b.handlers[t] = append(b.handlers[t], fn)
}

// On - типизированная подписка: On(bus, func(e domain.MoveRequested) {...})
func On[E domain.Event](b *Bus, fn func(E)) {
	var zero E
	b.Subscribe(zero.Type(), func(ev domain.Event) {
		if typed, ok := ev.(E); ok {
			fn(typed)
		}
	})
}

// Publish рассылает событие подписчикам
func (b *Bus) Publish(ev domain.Event) {
	if b.sink != nil {
		b.sink(ev)
	}
	for _, fn := range b.handlers[ev.Type()] {
		fn(ev)
	}
}

// Tap задает получателя всех событий
func (b *Bus) Tap(fn func(domain.Event)) {
	b.sink = fn
}
