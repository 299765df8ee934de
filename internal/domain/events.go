package domain

import "strings"

// EventType - Внутренний числовой идентификатор события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventMoveRequested
	EventPipChangeRequested
	EventCardDiscarded
	EventTargetsOffered
	EventTargetsCleared
	EventDieExhausted
	EventHandRefilled
)

var eventStringToType = map[string]EventType{
	"MOVE_REQUESTED":       EventMoveRequested,
	"PIP_CHANGE_REQUESTED": EventPipChangeRequested,
	"CARD_DISCARDED":       EventCardDiscarded,
	"TARGETS_OFFERED":      EventTargetsOffered,
	"TARGETS_CLEARED":      EventTargetsCleared,
	"DIE_EXHAUSTED":        EventDieExhausted,
	"HAND_REFILLED":        EventHandRefilled,
}

var eventTypeToString = map[EventType]string{
	EventMoveRequested:      "MOVE_REQUESTED",
	EventPipChangeRequested: "PIP_CHANGE_REQUESTED",
	EventCardDiscarded:      "CARD_DISCARDED",
	EventTargetsOffered:     "TARGETS_OFFERED",
	EventTargetsCleared:     "TARGETS_CLEARED",
	EventDieExhausted:       "DIE_EXHAUSTED",
	EventHandRefilled:       "HAND_REFILLED",
}

// ParseEvent конвертирует строку в EventType
func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

func (t EventType) String() string {
	if val, ok := eventTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - любое событие ядра
type Event interface {
	Type() EventType
}

// MoveRequested - актор должен переехать на клетку и заплатить Cost пипов
type MoveRequested struct {
	Actor OccupantID `json:"actor"`
	To    Coords     `json:"to"`
	Cost  int        `json:"cost"`
}

// PipChangeRequested - изменить пипы цели (сдвиг или переброс)
type PipChangeRequested struct {
	Target OccupantID `json:"target"`
	Change PipChange  `json:"change"`
}

// CardDiscarded - сыгранная карта уходит в сброс
type CardDiscarded struct {
	Card CardID `json:"card"`
}

// TargetsOffered - карта ждет выбора одной из клеток
type TargetsOffered struct {
	Card  CardID   `json:"card"`
	Tiles []Coords `json:"tiles"`
}

// TargetsCleared - подсветку целей можно убирать
type TargetsCleared struct{}

// DieExhausted - у кубика кончились пипы
type DieExhausted struct {
	Occupant OccupantID `json:"occupant"`
}

// HandRefilled - в пустую руку добраны карты
type HandRefilled struct {
	Cards []CardID `json:"cards"`
}

func (MoveRequested) Type() EventType      { return EventMoveRequested }
func (PipChangeRequested) Type() EventType { return EventPipChangeRequested }
func (CardDiscarded) Type() EventType      { return EventCardDiscarded }
func (TargetsOffered) Type() EventType     { return EventTargetsOffered }
func (TargetsCleared) Type() EventType     { return EventTargetsCleared }
func (DieExhausted) Type() EventType       { return EventDieExhausted }
func (HandRefilled) Type() EventType       { return EventHandRefilled }
