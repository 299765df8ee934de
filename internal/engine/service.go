package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"dicedeck-server/internal/config"
	"dicedeck-server/internal/domain"
	"dicedeck-server/internal/engine/handlers"
	"dicedeck-server/internal/engine/handlers/actions"
	"dicedeck-server/internal/game"
	"dicedeck-server/internal/network"
	"dicedeck-server/pkg/api"
	"dicedeck-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrUnknownAction = errors.New("unknown action")

// GameService - владелец партии. Все команды выполняются по одной,
// из Run или из Execute, под одним мьютексом.
type GameService struct {
	mu sync.Mutex

	Match *game.Match
	Hub   *network.Broadcaster

	CommandChan chan domain.InternalCommand

	logs   []api.LogEntry
	events []api.EventView
	seq    int

	replay   *domain.ReplaySession
	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

// NewService собирает партию из конфига. Один и тот же seed дает одну и ту же партию.
func NewService(cfg config.Config, seed int64, hub *network.Broadcaster) (*GameService, error) {
	rng := rand.New(rand.NewSource(seed))
	match, err := game.BuildMatch(cfg.Level, cfg.HandSize, rng)
	if err != nil {
		return nil, fmt.Errorf("build match: %w", err)
	}
	if hub == nil {
		hub = network.NewBroadcaster()
	}

	s := &GameService{
		Match:       match,
		Hub:         hub,
		CommandChan: make(chan domain.InternalCommand, 100),
		replay: &domain.ReplaySession{
			Seed:      seed,
			Timestamp: time.Now().Unix(),
		},
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		log:      logger.For("engine"),
	}

	match.Bus.Tap(s.journal)
	s.registerHandlers()

	s.log.WithFields(logrus.Fields{
		"seed":  seed,
		"cards": len(match.Cards),
		"dice":  len(match.Dice),
	}).Info("Match ready.")

	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionPlayCard] = handlers.WithPayload(actions.HandlePlayCard)
	s.handlers[domain.ActionPickTile] = handlers.WithPayload(actions.HandlePickTile)
	s.handlers[domain.ActionDeselect] = handlers.WithEmptyPayload(actions.HandleDeselect)
	s.handlers[domain.ActionSyncPosition] = handlers.WithPayload(actions.HandleSyncPosition)
}

// Submit принимает команду от внешнего мира (WebSocket) и ставит ее в очередь
func (s *GameService) Submit(ctx context.Context, session string, cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}

	select {
	case s.CommandChan <- domain.InternalCommand{Action: action, Token: session, Payload: cmd.Payload}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run - игровой цикл: команды по одной, после каждой снимок всем подписчикам
func (s *GameService) Run(ctx context.Context) error {
	s.log.Info("Game loop started.")
	defer s.log.Info("Game loop stopped.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-s.CommandChan:
			state := s.Execute(cmd)
			s.Hub.Broadcast(state)
		}
	}
}

// Execute выполняет одну команду и возвращает снимок после нее.
// Логи и события, накопленные за команду, уходят в снимок и сбрасываются.
func (s *GameService) Execute(cmd domain.InternalCommand) api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.executeCommand(cmd)

	state := BuildState(s.Match)
	state.Seq = s.seq
	state.Logs = s.logs
	state.Events = s.events
	s.logs = nil
	s.events = nil
	return state
}

func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		s.log.WithField("action", cmd.Action).Warn("No handler for action.")
		return
	}

	// Записываем до выполнения: отклоненная команда при повторе отклонится так же
	if cmd.Action.Mutates() {
		s.replay.Actions = append(s.replay.Actions, domain.ReplayAction{
			Seq:     s.seq,
			Action:  cmd.Action,
			Payload: slices.Clone(cmd.Payload),
		})
	}

	ctx := handlers.Context{Match: s.Match, Session: cmd.Token}
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		entry := s.log.WithFields(logrus.Fields{
			"action":  cmd.Action,
			"session": cmd.Token,
			"seq":     s.seq,
		}).WithError(err)
		if errors.Is(err, handlers.ErrBadPayload) {
			entry.Warn("Command rejected.")
		} else {
			entry.Debug("Command refused by the rules.")
		}
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.AddLog(result.Msg, msgType)
	}
}

// AddLog добавляет запись в игровой лог текущей команды
func (s *GameService) AddLog(text, logType string) {
	s.logs = append(s.logs, api.LogEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	s.log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}

func (s *GameService) journal(ev domain.Event) {
	s.events = append(s.events, api.EventView{Type: ev.Type().String(), Data: ev})
}

// State - снимок без сброса логов (для отладки и новых подключений)
func (s *GameService) State() api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := BuildState(s.Match)
	state.Seq = s.seq
	return state
}

// Recording возвращает копию записанной партии
func (s *GameService) Recording() *domain.ReplaySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *s.replay
	rec.Actions = slices.Clone(s.replay.Actions)
	return &rec
}

// Replay проигрывает записанную партию на свежем матче из того же конфига
func Replay(cfg config.Config, session *domain.ReplaySession) (*GameService, error) {
	s, err := NewService(cfg, session.Seed, nil)
	if err != nil {
		return nil, err
	}

	for _, act := range session.Actions {
		s.Execute(domain.InternalCommand{Action: act.Action, Token: "replay", Payload: act.Payload})
	}

	s.log.WithFields(logrus.Fields{
		"seed":    session.Seed,
		"actions": len(session.Actions),
	}).Info("Replay finished.")
	return s, nil
}
