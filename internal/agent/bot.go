package agent

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"dicedeck-server/internal/engine"
	"dicedeck-server/pkg/api"
	"dicedeck-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Bot - "игрок-компьютер" (Headless Agent).
// Подписывается на хаб как обычный клиент, получает те же снимки
// и отвечает теми же командами, что и браузер.
//
// Жизненный цикл:
//  1. NewBot - регистрация в хабе, личный канал Inbox.
//  2. Run - слушает Inbox, на каждый снимок вызывает Decide.
//  3. Decide - чистая функция: снимок -> команда.
type Bot struct {
	Session string
	Service *engine.GameService
	Inbox   chan api.ServerResponse
	Delay   time.Duration

	rng *rand.Rand
	// Карты без законных целей с последнего розыгрыша, их не предлагаем снова
	skip map[int]bool
	log  *logrus.Entry
}

func NewBot(service *engine.GameService, seed int64) *Bot {
	session := "bot-" + uuid.NewString()
	return &Bot{
		Session: session,
		Service: service,
		Inbox:   service.Hub.Register(session),
		Delay:   500 * time.Millisecond,
		rng:     rand.New(rand.NewSource(seed)),
		skip:    make(map[int]bool),
		log:     logger.For("bot").WithField("session", session),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) error {
	defer b.Service.Hub.Unregister(b.Session)

	b.log.Info("Agent started.")
	if err := b.Service.Submit(ctx, b.Session, api.ClientCommand{Action: "INIT"}); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Agent shut down.")
			return nil
		case state, ok := <-b.Inbox:
			if !ok {
				return nil
			}
			cmd, ok := b.Decide(state)
			if !ok {
				continue
			}
			if b.Delay > 0 {
				select {
				case <-time.After(b.Delay):
				case <-ctx.Done():
					return nil
				}
			}
			if err := b.Service.Submit(ctx, b.Session, cmd); err != nil {
				return nil
			}
		}
	}
}

// Decide выбирает следующую команду по снимку. false - делать нечего.
func (b *Bot) Decide(state api.ServerResponse) (api.ClientCommand, bool) {
	for _, ev := range state.Events {
		if ev.Type == "CARD_DISCARDED" || ev.Type == "HAND_REFILLED" {
			clear(b.skip)
			break
		}
	}

	if sel := state.Selection; sel != nil {
		if len(sel.Tiles) == 0 {
			b.skip[sel.CardID] = true
			return command("DESELECT", nil), true
		}
		tile := b.pickTile(state, sel)
		return command("PICK_TILE", api.TilePayload{X: tile.X, Y: tile.Y}), true
	}

	var playable []api.CardView
	for _, c := range state.Hand {
		if c.Playable && !b.skip[c.ID] {
			playable = append(playable, c)
		}
	}
	if len(playable) == 0 {
		return api.ClientCommand{}, false
	}

	card := playable[b.rng.Intn(len(playable))]
	return command("PLAY_CARD", api.CardPayload{CardID: card.ID}), true
}

// pickTile - атака бьет врага, лечение лечит своих, остальное наугад
func (b *Bot) pickTile(state api.ServerResponse, sel *api.SelectionView) api.TileRef {
	var action string
	for _, c := range state.Hand {
		if c.ID == sel.CardID {
			action = c.Action
			break
		}
	}

	want := ""
	switch action {
	case "ATTACK":
		want = "ENEMY"
	case "HEAL":
		want = "PLAYER"
	}

	if want != "" {
		for _, tile := range sel.Tiles {
			for _, o := range state.Occupants {
				if o.Pos == tile && o.Kind == want {
					return tile
				}
			}
		}
	}
	return sel.Tiles[b.rng.Intn(len(sel.Tiles))]
}

func command(action string, payload any) api.ClientCommand {
	cmd := api.ClientCommand{Action: action}
	if payload != nil {
		raw, _ := json.Marshal(payload)
		cmd.Payload = raw
	}
	return cmd
}
