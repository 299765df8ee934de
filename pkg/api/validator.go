package api

import (
	"errors"
	"math"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p CardPayload) Validate() error {
	if p.CardID < 0 {
		return errors.New("cardId must not be negative")
	}
	return nil
}

func (p TilePayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("tile coordinates must not be negative")
	}
	return nil
}

func (p SyncPositionPayload) Validate() error {
	if p.OccupantID == "" {
		return errors.New("occupantId is required")
	}
	if strings.TrimSpace(p.Kind) == "" {
		return errors.New("kind is required")
	}
	if isBad(p.X) || isBad(p.Y) {
		return errors.New("position must be a finite number")
	}
	return nil
}

func isBad(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
