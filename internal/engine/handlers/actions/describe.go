package actions

import (
	"fmt"

	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/engine/handlers"
	"dicedeck-server/internal/game"
)

// describe превращает разыгранную карту в запись лога
func describe(out game.Outcome) handlers.Result {
	if out.Card == nil {
		return handlers.EmptyResult()
	}

	title := out.Card.Action.Title()
	msgType := "INFO"
	if out.Card.Action.Kind == domain.CardAttack {
		msgType = "COMBAT"
	}

	if out.Target != nil {
		return handlers.Result{
			Msg:     fmt.Sprintf("Сыграна карта «%s» на клетку %s.", title, *out.Target),
			MsgType: msgType,
		}
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Сыграна карта «%s».", title),
		MsgType: msgType,
	}
}
