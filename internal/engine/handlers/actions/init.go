package actions

import (
	"dicedeck-server/internal/engine/handlers"
	"fmt"
)

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	hand := len(ctx.Match.Piles.Hand())
	return handlers.Result{
		Msg:     fmt.Sprintf("Добро пожаловать за стол. В руке карт: %d.", hand),
		MsgType: "INFO",
	}, nil
}
