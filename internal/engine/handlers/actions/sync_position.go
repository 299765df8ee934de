package actions

import (
	"errors"
	"fmt"

	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/engine/handlers"
	"dicedeck-server/pkg/api"
)

var errUnknownKind = errors.New("unknown occupant kind")

// HandleSyncPosition - клиент перетащил сущность и сообщает, где она теперь
func HandleSyncPosition(ctx handlers.Context, p api.SyncPositionPayload) (handlers.Result, error) {
	id, err := domain.ParseOccupantID(p.OccupantID)
	if err != nil {
		return handlers.Fail("Неизвестная сущность.", fmt.Errorf("%w: %v", handlers.ErrBadPayload, err))
	}
	kind := domain.ParseOccupantKind(p.Kind)
	if kind == domain.OccupantUnknown {
		return handlers.Fail("Неизвестная сущность.", fmt.Errorf("%w: %w %q", handlers.ErrBadPayload, errUnknownKind, p.Kind))
	}

	o := domain.Occupant{ID: id, Kind: kind}
	if _, err := ctx.Match.SyncPosition(o, domain.Vec2{X: p.X, Y: p.Y}); err != nil {
		switch {
		case errors.Is(err, domain.ErrOutOfBounds):
			return handlers.Fail("Сущность за пределами поля.", err)
		case errors.Is(err, domain.ErrTaken):
			return handlers.Fail("Клетка занята.", err)
		case errors.Is(err, domain.ErrEntityLookupFailed):
			return handlers.Fail("Такой сущности нет на поле.", err)
		}
		return handlers.Fail("Позиция не принята.", err)
	}
	return handlers.EmptyResult(), nil
}
