package systems

import (
	"errors"

	"dicedeck-server/internal/domain"
	"dicedeck-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MovementResult - результат перемещения по сетке
type MovementResult struct {
	From, To domain.Coords
	HasMoved bool
}

// ApplyMove переставляет актора на клетку. Сетка меняется только при успехе.
func ApplyMove(g *domain.Grid, actor domain.OccupantID, to domain.Coords) (MovementResult, error) {
	moveLogger := logger.Log.WithFields(logrus.Fields{
		"component": "movement_system",
		"actor_id":  actor,
		"to":        to,
	})

	from, _ := g.EntityToCoords(actor)
	res := MovementResult{From: from, To: to}

	if err := g.MoveEntity(actor, to); err != nil {
		if errors.Is(err, domain.ErrEntityLookupFailed) {
			// Сетка не знает про актора - индексы разъехались
			moveLogger.WithError(err).Warn("Move failed: actor is not on the grid.")
		} else {
			moveLogger.WithError(err).Debug("Move rejected.")
		}
		return res, err
	}

	res.HasMoved = true
	moveLogger.WithField("from", from).Debug("Move applied.")
	return res, nil
}
