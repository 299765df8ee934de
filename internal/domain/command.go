package domain

import "encoding/json"

// InternalCommand - команда для движка.
// Payload парсит хендлер.
type InternalCommand struct {
	Action  ActionType
	Token   string // ID сессии
	Payload json.RawMessage
}
