package domain

import (
	"fmt"
	"slices"
	"strings"
)

// CardActionKind - что делает карта
type CardActionKind uint8

const (
	CardJunk CardActionKind = iota
	CardMove
	CardAttack
	CardHeal
	CardHealSelf
	CardRerollSelf
)

var cardKindStringToKind = map[string]CardActionKind{
	"JUNK":        CardJunk,
	"MOVE":        CardMove,
	"ATTACK":      CardAttack,
	"HEAL":        CardHeal,
	"HEAL_SELF":   CardHealSelf,
	"REROLL_SELF": CardRerollSelf,
}

var cardKindToString = map[CardActionKind]string{
	CardJunk:       "JUNK",
	CardMove:       "MOVE",
	CardAttack:     "ATTACK",
	CardHeal:       "HEAL",
	CardHealSelf:   "HEAL_SELF",
	CardRerollSelf: "REROLL_SELF",
}

// ParseCardActionKind - без учета регистра; второе значение false для неизвестных
func ParseCardActionKind(s string) (CardActionKind, bool) {
	k, ok := cardKindStringToKind[strings.ToUpper(s)]
	return k, ok
}

func (k CardActionKind) String() string {
	if val, ok := cardKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ReachMode - точная дистанция или диапазон от 1
type ReachMode uint8

const (
	ReachExact ReachMode = iota
	ReachRange
)

// Reach - как далеко бьет эффект
type Reach struct {
	Mode     ReachMode `json:"mode"`
	Distance int       `json:"distance"`
}

// Exact - только клетки ровно на дистанции n
func Exact(n int) Reach {
	return Reach{Mode: ReachExact, Distance: n}
}

// UpTo - все клетки на дистанции 1..n
func UpTo(n int) Reach {
	return Reach{Mode: ReachRange, Distance: n}
}

// magnitudes разворачивает Reach в список дистанций
func (r Reach) magnitudes() []int {
	if r.Mode == ReachExact {
		return []int{r.Distance}
	}
	out := make([]int, 0, r.Distance)
	for m := 1; m <= r.Distance; m++ {
		out = append(out, m)
	}
	return out
}

func (r Reach) String() string {
	if r.Mode == ReachExact {
		return fmt.Sprintf("=%d", r.Distance)
	}
	return fmt.Sprintf("1-%d", r.Distance)
}

// Direction - геометрия эффекта
type Direction uint8

const (
	DirArea Direction = iota
	DirOrthogonal
	DirDiagonal
)

var directionStringToDir = map[string]Direction{
	"AREA":       DirArea,
	"ORTHOGONAL": DirOrthogonal,
	"DIAGONAL":   DirDiagonal,
}

func ParseDirection(s string) (Direction, bool) {
	d, ok := directionStringToDir[strings.ToUpper(s)]
	return d, ok
}

func (d Direction) String() string {
	for s, v := range directionStringToDir {
		if v == d {
			return s
		}
	}
	return "UNKNOWN"
}

var (
	orthogonalSteps = [4]Coords{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	diagonalSteps   = [4]Coords{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// CardAction - эффект карты. Одна структура на все варианты, поле Kind решает,
// какие поля значимы:
//
//	Move:       Reach, Direction, Cost
//	Attack:     Reach, Direction, Amount (сила), Cost, Poison
//	Heal:       Reach, Direction, Amount
//	HealSelf:   Amount
//	RerollSelf, Junk: ничего
//
// После создания не меняется.
type CardAction struct {
	Kind      CardActionKind `json:"kind"`
	Reach     Reach          `json:"reach"`
	Direction Direction      `json:"direction"`
	Amount    int            `json:"amount,omitempty"`
	Cost      int            `json:"cost,omitempty"`
	Poison    bool           `json:"poison,omitempty"`
}

func MoveAction(reach Reach, dir Direction, cost int) CardAction {
	return CardAction{Kind: CardMove, Reach: reach, Direction: dir, Cost: cost}
}

func AttackAction(reach Reach, dir Direction, power, cost int, poison bool) CardAction {
	return CardAction{Kind: CardAttack, Reach: reach, Direction: dir, Amount: power, Cost: cost, Poison: poison}
}

func HealAction(reach Reach, dir Direction, amount int) CardAction {
	return CardAction{Kind: CardHeal, Reach: reach, Direction: dir, Amount: amount}
}

func HealSelfAction(amount int) CardAction {
	return CardAction{Kind: CardHealSelf, Amount: amount}
}

func RerollSelfAction() CardAction {
	return CardAction{Kind: CardRerollSelf}
}

func JunkAction() CardAction {
	return CardAction{Kind: CardJunk}
}

// TriggerKind - играется ли карта сразу или ждет выбора тайла
type TriggerKind uint8

const (
	TriggerCardSelection TriggerKind = iota
	TriggerTileSelection
)

func (k TriggerKind) String() string {
	if k == TriggerTileSelection {
		return "TILE_SELECTION"
	}
	return "CARD_SELECTION"
}

// Trigger - классификация розыгрыша карты
type Trigger struct {
	Kind             TriggerKind `json:"kind"`
	Offsets          []Coords    `json:"offsets,omitempty"`
	RequiresCreature bool        `json:"requiresCreature,omitempty"`
}

// targetsTiles - варианты, которым нужен выбор клетки
func (a CardAction) targetsTiles() bool {
	switch a.Kind {
	case CardMove, CardAttack, CardHeal:
		return true
	default:
		return false
	}
}

// targetsDice - варианты, которые бьют только по существам
func (a CardAction) targetsDice() bool {
	return a.Kind == CardAttack || a.Kind == CardHeal
}

// EffectTiles возвращает смещения от актора, которые задевает эффект.
// Атака и лечение включают клетку самого актора (дистанция 0).
// Порядок детерминированный: по строкам, затем по столбцам.
func (a CardAction) EffectTiles() []Coords {
	if !a.targetsTiles() {
		return nil
	}

	set := make(map[Coords]struct{})
	switch a.Direction {
	case DirOrthogonal:
		for _, m := range a.Reach.magnitudes() {
			for _, step := range orthogonalSteps {
				set[step.Scale(m)] = struct{}{}
			}
		}
	case DirDiagonal:
		for _, m := range a.Reach.magnitudes() {
			for _, step := range diagonalSteps {
				set[step.Scale(m)] = struct{}{}
			}
		}
	case DirArea:
		n := a.Reach.Distance
		if a.Reach.Mode == ReachExact {
			// Кольцо: верхняя/нижняя строки и левый/правый столбцы на ±n
			for i := -n; i <= n; i++ {
				set[Coords{X: i, Y: -n}] = struct{}{}
				set[Coords{X: i, Y: n}] = struct{}{}
				set[Coords{X: -n, Y: i}] = struct{}{}
				set[Coords{X: n, Y: i}] = struct{}{}
			}
		} else {
			for y := -n; y <= n; y++ {
				for x := -n; x <= n; x++ {
					set[Coords{X: x, Y: y}] = struct{}{}
				}
			}
		}
	}

	if a.targetsDice() {
		set[Origin] = struct{}{}
	} else {
		delete(set, Origin)
	}

	out := make([]Coords, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	SortCoords(out)
	return out
}

// Trigger классифицирует карту: сразу или через выбор тайла
func (a CardAction) Trigger() Trigger {
	if !a.targetsTiles() {
		return Trigger{Kind: TriggerCardSelection}
	}
	return Trigger{
		Kind:             TriggerTileSelection,
		Offsets:          a.EffectTiles(),
		RequiresCreature: a.targetsDice(),
	}
}

// Title - подпись на карте
func (a CardAction) Title() string {
	switch a.Kind {
	case CardMove:
		return "Move"
	case CardAttack:
		if a.Poison {
			return "Poison"
		}
		return "Attack"
	case CardHeal:
		return "Heal"
	case CardHealSelf:
		return "Heal self"
	case CardRerollSelf:
		return "Reroll"
	default:
		return "Junk"
	}
}

// PipChange - сколько пипов карта меняет у самого актора (для отображения цены)
func (a CardAction) PipChange() (int, bool) {
	switch a.Kind {
	case CardMove, CardAttack:
		return -a.Cost, true
	case CardHealSelf:
		return a.Amount, true
	default:
		return 0, false
	}
}

// Palette - цвета подсветки клеток при выборе цели
type Palette struct {
	Highlight string `json:"highlight"`
	Hover     string `json:"hover"`
}

func (a CardAction) Palette() (Palette, bool) {
	switch {
	case a.Kind == CardMove:
		return Palette{Highlight: "#a3e635", Hover: "#166534"}, true
	case a.Kind == CardAttack && a.Poison:
		return Palette{Highlight: "#a855f7", Hover: "#581c87"}, true
	case a.Kind == CardAttack:
		return Palette{Highlight: "#fda4af", Hover: "#f87171"}, true
	case a.Kind == CardHeal:
		return Palette{Highlight: "#6ee7b7", Hover: "#047857"}, true
	default:
		return Palette{}, false
	}
}

// SortCoords сортирует клетки по строкам (y), затем по x
func SortCoords(cs []Coords) {
	slices.SortFunc(cs, func(a, b Coords) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
}
