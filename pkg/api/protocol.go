package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный "снимок" партии: поле, кубики, карты и то, что случилось с прошлой команды.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Seq номер последней обработанной команды.
	Seq int `json:"seq"`

	// SessionID сессия клиента, которому адресован снимок.
	SessionID string `json:"sessionId,omitempty"`

	// Grid метаданные о размере поля и его положении в мире.
	Grid *GridMeta `json:"grid,omitempty"`

	// Occupants все занятые клетки: кубики и стены.
	Occupants []OccupantView `json:"occupants"`

	// Hand карты в руке в порядке добора.
	Hand []CardView `json:"hand"`

	// DrawCount сколько карт осталось в колоде добора.
	DrawCount int `json:"drawCount"`

	// Discard карты в сбросе.
	Discard []CardView `json:"discard,omitempty"`

	// Selection выбранная карта и подсвеченные клетки. nil, если ничего не выбрано.
	Selection *SelectionView `json:"selection,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлой команды.
	Logs []LogEntry `json:"logs,omitempty"`

	// Events журнал событий шины с прошлой команды, в порядке публикации.
	Events []EventView `json:"events,omitempty"`
}

// GridMeta содержит размеры поля и его мировую привязку,
// чтобы клиент мог переводить пиксели в клетки так же, как сервер.
type GridMeta struct {
	Width    int     `json:"w"`
	Height   int     `json:"h"`
	TileSize float32 `json:"tileSize"`
	AnchorX  float32 `json:"anchorX"`
	AnchorY  float32 `json:"anchorY"`
}

// TileRef - координата клетки
type TileRef struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WorldPos - точка в мировых координатах
type WorldPos struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// OccupantView это DTO для того, что стоит на клетке.
type OccupantView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // PLAYER, ENEMY, WALL

	Pos   TileRef  `json:"pos"`
	World WorldPos `json:"world"`

	// Die есть только у кубиков.
	Die *DieView `json:"die,omitempty"`
}

// DieView это DTO кубика.
type DieView struct {
	Kind      string `json:"kind"` // D6, D20...
	Pips      int    `json:"pips"`
	MaxPips   int    `json:"maxPips"`
	ShowPips  bool   `json:"showPips"`
	Exhausted bool   `json:"exhausted"`
}

// CardView это DTO карты. Все, что нужно клиенту, чтобы нарисовать карту.
type CardView struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Action string `json:"action"`
	Reach  string `json:"reach,omitempty"`
	// PipChange сколько очков карта снимет (или добавит) кубику игрока.
	PipChange *int   `json:"pipChange,omitempty"`
	Trigger   string `json:"trigger"` // CARD_SELECTION или TILE_SELECTION

	// Offsets клетки относительно игрока, на которые действует карта.
	Offsets []TileRef    `json:"offsets,omitempty"`
	Palette *PaletteView `json:"palette,omitempty"`

	// Playable false, если условие карты сейчас не выполняется.
	Playable bool `json:"playable"`
}

// PaletteView - цвета подсветки клеток.
type PaletteView struct {
	Highlight string `json:"highlight"`
	Hover     string `json:"hover"`
}

// SelectionView - выбранная карта и законные клетки.
type SelectionView struct {
	CardID int       `json:"cardId"`
	Tiles  []TileRef `json:"tiles"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// EventView одно событие шины.
type EventView struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор сессии. Сервер выставляет его сам при подключении.
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// CardPayload используется для PLAY_CARD.
type CardPayload struct {
	CardID int `json:"cardId"`
}

// TilePayload используется для PICK_TILE.
type TilePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SyncPositionPayload используется для SYNC_POSITION: сущность перетащили мышью,
// клиент сообщает ее мировую позицию.
type SyncPositionPayload struct {
	OccupantID string  `json:"occupantId"`
	Kind       string  `json:"kind"`
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
}
