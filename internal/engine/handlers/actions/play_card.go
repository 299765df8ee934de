package actions

import (
	"errors"
	"fmt"

	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/engine/handlers"
	"dicedeck-server/internal/game"
	"dicedeck-server/pkg/api"
)

func HandlePlayCard(ctx handlers.Context, p api.CardPayload) (handlers.Result, error) {
	out, err := ctx.Match.SelectCard(domain.CardID(p.CardID))
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNotInHand):
			return handlers.Fail("Этой карты нет в руке.", err)
		case errors.Is(err, domain.ErrConditionNotMet):
			return handlers.Fail("Кубику не хватает очков для этой карты.", err)
		case errors.Is(err, game.ErrNoActor):
			return handlers.Fail("Кубика игрока нет на поле.", err)
		}
		return handlers.Fail("Карту не удалось разыграть.", err)
	}

	if out.Pending {
		sel := ctx.Match.Selection()
		if sel == nil || len(sel.Tiles) == 0 {
			return handlers.Result{
				Msg:     fmt.Sprintf("%s: подходящих клеток нет.", out.Card.Action.Title()),
				MsgType: "INFO",
			}, nil
		}
		return handlers.Result{
			Msg:     fmt.Sprintf("%s: выберите клетку.", out.Card.Action.Title()),
			MsgType: "INFO",
		}, nil
	}

	return describe(out), nil
}
