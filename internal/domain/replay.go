package domain

import "encoding/json"

// ReplayAction - одна записанная команда
type ReplayAction struct {
	Seq     int             `json:"seq"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ReplaySession - полная запись партии.
// С тем же Seed и той же лентой команд матч приходит в то же состояние.
type ReplaySession struct {
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}
