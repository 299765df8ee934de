package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dicedeck-server/internal/config"
	"dicedeck-server/internal/domain"
	"dicedeck-server/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig - поле 5x5, игрок d6(5) в центре, враг рядом, колода без случайностей в руке
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Level = config.LevelConfig{
		Width: 5, Height: 5,
		Player:  config.DieConfig{Die: "d6", Pips: 5, At: config.Point{X: 2, Y: 2}},
		Enemies: []config.DieConfig{{Die: "d6", Pips: 3, At: config.Point{X: 2, Y: 0}}},
		Deck: []config.CardConfig{
			{Action: "move", Reach: "exact", Distance: 1, Direction: "orthogonal", Cost: 1},
			{Action: "attack", Reach: "range", Distance: 2, Direction: "orthogonal", Cost: 2, Amount: 2},
			{Action: "reroll_self"},
		},
	}
	return cfg
}

func newTestService(t *testing.T) *GameService {
	t.Helper()
	s, err := NewService(testConfig(), 42, nil)
	require.NoError(t, err)
	return s
}

func cmd(t *testing.T, action domain.ActionType, payload any) domain.InternalCommand {
	t.Helper()
	c := domain.InternalCommand{Action: action, Token: "test"}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		c.Payload = raw
	}
	return c
}

func cardByAction(t *testing.T, state api.ServerResponse, action string) api.CardView {
	t.Helper()
	for _, c := range state.Hand {
		if c.Action == action {
			return c
		}
	}
	t.Fatalf("no %s card in hand %+v", action, state.Hand)
	return api.CardView{}
}

func playerView(t *testing.T, state api.ServerResponse) api.OccupantView {
	t.Helper()
	for _, o := range state.Occupants {
		if o.Kind == "PLAYER" {
			return o
		}
	}
	t.Fatal("player not in snapshot")
	return api.OccupantView{}
}

func TestService_InitSnapshot(t *testing.T) {
	s := newTestService(t)

	state := s.Execute(cmd(t, domain.ActionInit, nil))
	assert.Equal(t, "UPDATE", state.Type)
	assert.Equal(t, 1, state.Seq)
	require.NotNil(t, state.Grid)
	assert.Equal(t, 5, state.Grid.Width)
	assert.Equal(t, float32(domain.TileSize), state.Grid.TileSize)

	assert.Len(t, state.Occupants, 2)
	assert.Len(t, state.Hand, 3)
	assert.Zero(t, state.DrawCount)
	assert.Nil(t, state.Selection)
	require.Len(t, state.Logs, 1)
	assert.Equal(t, "INFO", state.Logs[0].Type)

	// INIT не пишется в реплей
	assert.Empty(t, s.Recording().Actions)
}

func TestService_PlayMoveCard(t *testing.T) {
	s := newTestService(t)
	state := s.State()
	move := cardByAction(t, state, "MOVE")
	assert.Equal(t, "TILE_SELECTION", move.Trigger)
	require.NotNil(t, move.PipChange)
	assert.Equal(t, -1, *move.PipChange)
	assert.True(t, move.Playable)

	state = s.Execute(cmd(t, domain.ActionPlayCard, api.CardPayload{CardID: move.ID}))
	require.NotNil(t, state.Selection)
	assert.Equal(t, move.ID, state.Selection.CardID)
	assert.Contains(t, state.Selection.Tiles, api.TileRef{X: 2, Y: 1})
	require.Len(t, state.Events, 1)
	assert.Equal(t, "TARGETS_OFFERED", state.Events[0].Type)

	state = s.Execute(cmd(t, domain.ActionPickTile, api.TilePayload{X: 2, Y: 1}))
	assert.Nil(t, state.Selection)
	p := playerView(t, state)
	assert.Equal(t, api.TileRef{X: 2, Y: 1}, p.Pos)
	require.NotNil(t, p.Die)
	assert.Equal(t, 4, p.Die.Pips)

	var types []string
	for _, ev := range state.Events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []string{"MOVE_REQUESTED", "PIP_CHANGE_REQUESTED", "CARD_DISCARDED", "TARGETS_CLEARED"}, types)
	require.Len(t, state.Discard, 1)
	assert.Equal(t, move.ID, state.Discard[0].ID)

	assert.Len(t, s.Recording().Actions, 2)
}

func TestService_RejectedCommandsReportErrors(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name string
		cmd  domain.InternalCommand
	}{
		{"pick without selection", cmd(t, domain.ActionPickTile, api.TilePayload{X: 1, Y: 1})},
		{"card not in hand", cmd(t, domain.ActionPlayCard, api.CardPayload{CardID: 99})},
		{"missing payload", cmd(t, domain.ActionPlayCard, nil)},
		{"broken payload", domain.InternalCommand{Action: domain.ActionPickTile, Payload: json.RawMessage(`{"x":"a"}`)}},
		{"invalid payload", cmd(t, domain.ActionPickTile, api.TilePayload{X: -1, Y: 0})},
		{"unknown occupant", cmd(t, domain.ActionSyncPosition, api.SyncPositionPayload{OccupantID: "nope", Kind: "ENEMY"})},
		{"untracked occupant", cmd(t, domain.ActionSyncPosition, api.SyncPositionPayload{OccupantID: "999", Kind: "ENEMY"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.State()
			state := s.Execute(tt.cmd)

			require.Len(t, state.Logs, 1)
			assert.Equal(t, "ERROR", state.Logs[0].Type)
			assert.Equal(t, before.Occupants, state.Occupants)
			assert.Equal(t, before.Hand, state.Hand)
		})
	}
}

func TestService_SyncPosition(t *testing.T) {
	s := newTestService(t)
	state := s.State()

	var enemy api.OccupantView
	for _, o := range state.Occupants {
		if o.Kind == "ENEMY" {
			enemy = o
		}
	}
	require.NotEmpty(t, enemy.ID)

	// Сдвигаем врага на клетку вправо в мировых координатах
	state = s.Execute(cmd(t, domain.ActionSyncPosition, api.SyncPositionPayload{
		OccupantID: enemy.ID,
		Kind:       enemy.Kind,
		X:          enemy.World.X + domain.TileSize,
		Y:          enemy.World.Y,
	}))
	assert.Empty(t, state.Logs)

	for _, o := range state.Occupants {
		if o.ID == enemy.ID {
			assert.Equal(t, api.TileRef{X: 3, Y: 0}, o.Pos)
		}
	}
}

func TestService_DeselectKeepsBoard(t *testing.T) {
	s := newTestService(t)
	attack := cardByAction(t, s.State(), "ATTACK")

	s.Execute(cmd(t, domain.ActionPlayCard, api.CardPayload{CardID: attack.ID}))
	before := s.State()
	require.NotNil(t, before.Selection)

	after := s.Execute(cmd(t, domain.ActionDeselect, nil))
	assert.Nil(t, after.Selection)
	assert.Equal(t, before.Occupants, after.Occupants)
	assert.Equal(t, before.Hand, after.Hand)
}

func TestService_ReplayReachesSameState(t *testing.T) {
	live := newTestService(t)
	state := live.State()
	attack := cardByAction(t, state, "ATTACK")
	reroll := cardByAction(t, state, "REROLL_SELF")

	live.Execute(cmd(t, domain.ActionPlayCard, api.CardPayload{CardID: reroll.ID}))
	live.Execute(cmd(t, domain.ActionPlayCard, api.CardPayload{CardID: attack.ID}))
	live.Execute(cmd(t, domain.ActionPickTile, api.TilePayload{X: 2, Y: 0}))
	live.Execute(cmd(t, domain.ActionPickTile, api.TilePayload{X: 4, Y: 4})) // отклонено, но записано

	rec := live.Recording()
	require.Len(t, rec.Actions, 4)
	assert.Equal(t, int64(42), rec.Seed)

	replayed, err := Replay(testConfig(), rec)
	require.NoError(t, err)

	want, got := live.State(), replayed.State()
	assert.Equal(t, want.Occupants, got.Occupants)
	assert.Equal(t, want.Hand, got.Hand)
	assert.Equal(t, want.Discard, got.Discard)
	assert.Equal(t, want.Selection, got.Selection)
}

func TestService_RunBroadcastsAfterEachCommand(t *testing.T) {
	s := newTestService(t)
	inbox := s.Hub.Register("watcher")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.NoError(t, s.Submit(ctx, "watcher", api.ClientCommand{Action: "init"}))

	select {
	case state := <-inbox:
		assert.Equal(t, "watcher", state.SessionID)
		assert.Equal(t, 1, state.Seq)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot broadcast")
	}

	assert.ErrorIs(t, s.Submit(ctx, "watcher", api.ClientCommand{Action: "MOVE"}), ErrUnknownAction)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("game loop did not stop")
	}
}
