package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// OccupantKind - кто стоит на тайле
type OccupantKind uint8

const (
	OccupantUnknown OccupantKind = iota
	OccupantPlayer
	OccupantEnemy
	OccupantWall
)

var occupantStringToKind = map[string]OccupantKind{
	"PLAYER": OccupantPlayer,
	"ENEMY":  OccupantEnemy,
	"WALL":   OccupantWall,
}

var occupantKindToString = map[OccupantKind]string{
	OccupantPlayer: "PLAYER",
	OccupantEnemy:  "ENEMY",
	OccupantWall:   "WALL",
}

// ParseOccupantKind конвертирует строку из конфига/JSON в OccupantKind
func ParseOccupantKind(s string) OccupantKind {
	if val, ok := occupantStringToKind[strings.ToUpper(s)]; ok {
		return val
	}
	return OccupantUnknown
}

func (k OccupantKind) String() string {
	if val, ok := occupantKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsDie - игрок и враги это кубики, стены нет
func (k OccupantKind) IsDie() bool {
	return k == OccupantPlayer || k == OccupantEnemy
}

// OccupantID - упакованный идентификатор (Kind + Index)
type OccupantID uint64

const (
	bitsIndex = 40
	shiftKind = 56

	maskIndex = (1 << bitsIndex) - 1
	maskKind  = 0xFF
)

// PackOccupantID создает ID из типа и порядкового номера
func PackOccupantID(kind OccupantKind, index uint64) OccupantID {
	id := index & maskIndex
	id |= (uint64(kind) & maskKind) << shiftKind
	return OccupantID(id)
}

func (id OccupantID) Kind() OccupantKind {
	return OccupantKind((id >> shiftKind) & maskKind)
}

func (id OccupantID) Index() uint64 {
	return uint64(id & maskIndex)
}

// MarshalJSON пишет ID строкой, JS теряет точность на больших числах
func (id OccupantID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строку, и число
func (id *OccupantID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := ParseOccupantID(string(data))
	if err != nil {
		return err
	}
	*id = val
	return nil
}

// ParseOccupantID разбирает десятичную запись ID
func ParseOccupantID(s string) (OccupantID, error) {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid occupant id %q: %w", s, err)
	}
	return OccupantID(val), nil
}

// String для логов: [PLAYER:1]
func (id OccupantID) String() string {
	return fmt.Sprintf("[%s:%d]", id.Kind(), id.Index())
}

// Occupant - запись о том, кто занимает тайл
type Occupant struct {
	ID   OccupantID   `json:"id"`
	Kind OccupantKind `json:"kind"`
}

// IsDie true для существ (то, во что можно целиться атакой/лечением)
func (o Occupant) IsDie() bool {
	return o.Kind.IsDie()
}
