package actions

import (
	"errors"

	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/engine/handlers"
	"dicedeck-server/internal/game"
	"dicedeck-server/pkg/api"
)

func HandlePickTile(ctx handlers.Context, p api.TilePayload) (handlers.Result, error) {
	out, err := ctx.Match.PickTile(domain.NewCoords(p.X, p.Y))
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNoSelection):
			return handlers.Fail("Сначала выберите карту.", err)
		case errors.Is(err, game.ErrIllegalTarget):
			return handlers.Fail("Сюда эту карту не сыграть.", err)
		case errors.Is(err, domain.ErrTaken):
			return handlers.Fail("Клетка занята.", err)
		}
		return handlers.Fail("Карта не сработала.", err)
	}
	return describe(out), nil
}
