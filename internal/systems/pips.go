package systems

import (
	"math/rand"

	"dicedeck-server/internal/domain"
	"dicedeck-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// PipResult - что произошло со счетчиком
type PipResult struct {
	Before    int
	After     int
	Exhausted bool
}

// ApplyPipChange применяет сдвиг или переброс к кубику.
// Зажим в [0, MaxPips] делает сам Die.
func ApplyPipChange(target domain.OccupantID, die *domain.Die, change domain.PipChange, rng *rand.Rand) PipResult {
	res := PipResult{Before: die.Pips}

	switch change.Kind {
	case domain.PipOffset:
		die.ApplyOffset(change.Offset)
	case domain.PipRandomise:
		die.Randomise(rng)
	}

	res.After = die.Pips
	res.Exhausted = die.Exhausted()

	entry := logger.Log.WithFields(logrus.Fields{
		"component":   "pip_system",
		"target_id":   target,
		"die":         die.Kind.String(),
		"offset":      change.Offset,
		"randomise":   change.Kind == domain.PipRandomise,
		"pips_before": res.Before,
		"pips_after":  res.After,
	})
	entry.Info("Pip change resolved.")
	if res.Exhausted && res.Before > 0 {
		entry.Warn("Die is out of pips and should die.")
	}

	return res
}
