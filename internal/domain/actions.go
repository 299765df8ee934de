package domain

import "strings"

// ActionType - Внутренний числовой идентификатор входящей команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionPlayCard
	ActionPickTile
	ActionDeselect
	ActionSyncPosition
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":          ActionInit,
	"PLAY_CARD":     ActionPlayCard,
	"PICK_TILE":     ActionPickTile,
	"DESELECT":      ActionDeselect,
	"SYNC_POSITION": ActionSyncPosition,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:         "INIT",
	ActionPlayCard:     "PLAY_CARD",
	ActionPickTile:     "PICK_TILE",
	ActionDeselect:     "DESELECT",
	ActionSyncPosition: "SYNC_POSITION",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Mutates - меняет ли команда состояние матча (нужно ли писать ее в реплей)
func (a ActionType) Mutates() bool {
	switch a {
	case ActionPlayCard, ActionPickTile, ActionDeselect, ActionSyncPosition:
		return true
	default:
		return false
	}
}
