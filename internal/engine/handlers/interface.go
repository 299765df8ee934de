package handlers

import (
	"dicedeck-server/internal/game"
	"encoding/json"
)

// Context передает хендлеру партию, над которой выполняется команда.
// Хендлер меняет состояние только через методы Match.
type Context struct {
	Match   *game.Match
	Session string // Кто прислал команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)
}

// HandlerFunc - это контракт для любой команды (PLAY_CARD, PICK_TILE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Fail - результат для отклоненной команды: игрок видит текст, движок видит ошибку
func Fail(msg string, err error) (Result, error) {
	return Result{Msg: msg, MsgType: "ERROR"}, err
}
