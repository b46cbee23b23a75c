package core

// ActionKind identifies the shape of a player action.
type ActionKind int

const (
	ActionNone   ActionKind = iota
	ActionClick             // Bare click or key press (click speed, reaction time)
	ActionSelect            // Pick a slot or entity (mole hole, simon pad, memory card)
	ActionPoint             // Click at a board position (aim trainer)
	ActionSteer             // Direction key (snake)
	ActionText              // Full character buffer (typing speed)
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionClick:
		return "click"
	case ActionSelect:
		return "select"
	case ActionPoint:
		return "point"
	case ActionSteer:
		return "steer"
	case ActionText:
		return "text"
	default:
		return "unknown"
	}
}

// Direction is a movement direction for directional games.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit step for the direction.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{Y: -1}
	case DirDown:
		return Point{Y: 1}
	case DirLeft:
		return Point{X: -1}
	case DirRight:
		return Point{X: 1}
	default:
		return Point{}
	}
}

// Opposite reports whether d and other point in opposite directions.
func (d Direction) Opposite(other Direction) bool {
	a, b := d.Delta(), other.Delta()
	if a == (Point{}) || b == (Point{}) {
		return false
	}
	return a.X+b.X == 0 && a.Y+b.Y == 0
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Action is a player input forwarded by the presentation layer.
// Only the fields relevant to Kind are read.
type Action struct {
	Kind   ActionKind
	Slot   int       // ActionSelect: hole, pad or card index
	Target int       // ActionSelect: entity id, 0 when selecting by slot
	Pos    Point     // ActionPoint: board coordinate
	Dir    Direction // ActionSteer
	Text   string    // ActionText: current input buffer
}

// Click returns a bare click action.
func Click() Action { return Action{Kind: ActionClick} }

// Select returns an action selecting the given slot.
func Select(slot int) Action { return Action{Kind: ActionSelect, Slot: slot} }

// SelectEntity returns an action targeting an entity by id.
func SelectEntity(id int) Action { return Action{Kind: ActionSelect, Target: id, Slot: -1} }

// PointAt returns a board click at (x, y).
func PointAt(x, y int) Action { return Action{Kind: ActionPoint, Pos: Point{X: x, Y: y}} }

// Steer returns a direction change action.
func Steer(d Direction) Action { return Action{Kind: ActionSteer, Dir: d} }

// Type returns a typing action carrying the whole buffer.
func Type(buf string) Action { return Action{Kind: ActionText, Text: buf} }

// DirectionFromKey maps browser/terminal arrow key names to a direction.
func DirectionFromKey(key string) Direction {
	switch key {
	case "ArrowUp", "up", "w":
		return DirUp
	case "ArrowDown", "down", "s":
		return DirDown
	case "ArrowLeft", "left", "a":
		return DirLeft
	case "ArrowRight", "right", "d":
		return DirRight
	default:
		return DirNone
	}
}
