package actions

import "dicedeck-server/internal/engine/handlers"

func HandleDeselect(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Match.Deselect() {
		return handlers.EmptyResult(), nil
	}
	return handlers.Result{Msg: "Выбор снят.", MsgType: "INFO"}, nil
}
