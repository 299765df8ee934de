package handlers

import (
	"dicedeck-server/pkg/api"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadPayload - команда пришла с данными, которые нельзя разобрать или проверить
var ErrBadPayload = errors.New("bad payload")

// TypedHandlerFunc - хендлер, который работает с уже разобранной структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер без данных (INIT, DESELECT)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload превращает типизированный хендлер в HandlerFunc.
// Unmarshal и Validate происходят здесь, до логики.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		if len(raw) == 0 || string(raw) == "null" {
			return Fail("Команде не хватает данных.", fmt.Errorf("%w: payload is required", ErrBadPayload))
		}

		var payload T
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Fail("Команда не распознана.", fmt.Errorf("%w: %v", ErrBadPayload, err))
		}

		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Fail("Команда не распознана.", fmt.Errorf("%w: %v", ErrBadPayload, err))
			}
		}

		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных. Входящий JSON игнорируется.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}
