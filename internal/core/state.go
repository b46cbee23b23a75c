package core

import "time"

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Phase is a game-specific sub-state of a running session, such as
// "playback" for simon says or "waiting" for reaction time.
type Phase string

const PhaseNone Phase = ""

// Reason describes why a session ended.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonTimeout    Reason = "timeout"     // Countdown reached zero
	ReasonCollision  Reason = "collision"   // Snake hit a wall or itself
	ReasonMismatch   Reason = "mismatch"    // Wrong step in a sequence
	ReasonCompleted  Reason = "completed"   // Goal reached (all pairs, reaction measured)
	ReasonFalseStart Reason = "false_start" // Input before the stimulus
	ReasonExhausted  Reason = "exhausted"   // No valid placement left
	ReasonAborted    Reason = "aborted"     // Stopped or restarted by the player
	ReasonFault      Reason = "fault"       // Unexpected rule error
)

// Params are the time-pressure parameters derived from the current score.
type Params struct {
	IntervalMs int     // Spawn interval, target lifetime or move period
	Size       int     // Target size, hole count or grid size
	DecayRate  float64 // Remaining fraction of the base interval, in [0, 1]
}

// Interval returns IntervalMs as a duration.
func (p Params) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// EntityState is the visible state of an entity.
type EntityState int

const (
	EntityActive   EntityState = iota // Clickable / visible
	EntityHidden                      // Face down, unlit
	EntityRevealed                    // Face up, pending comparison
	EntityMatched                     // Permanently matched
	EntityLit                         // Highlighted during playback
)

func (s EntityState) String() string {
	switch s {
	case EntityActive:
		return "active"
	case EntityHidden:
		return "hidden"
	case EntityRevealed:
		return "revealed"
	case EntityMatched:
		return "matched"
	case EntityLit:
		return "lit"
	default:
		return "unknown"
	}
}

// Entity is any transient on-board object a game spawns.
type Entity struct {
	ID        int
	Slot      int    // Hole, pad or card index; -1 when positional
	Pos       Point  // Board position (top-left for sized targets)
	Size      int    // Edge length for sized targets
	Label     string // Card face, sentence text
	State     EntityState
	SpawnedAt time.Duration
	TTL       time.Duration // Zero when the entity never expires
}

// Bounds returns the entity's hit box.
func (e Entity) Bounds() Rect {
	size := e.Size
	if size <= 0 {
		size = 1
	}
	return NewRect(e.Pos.X, e.Pos.Y, size, size)
}

// Cue is a fire-and-forget notification for the presentation layer.
type Cue string

const (
	CueHit     Cue = "hit"
	CueMiss    Cue = "miss"
	CueSuccess Cue = "success"
	CueFail    Cue = "fail"
)

// Snapshot is an immutable view of a session for rendering.
type Snapshot struct {
	SessionID  string
	Game       string
	Mode       string
	Generation uint64

	Status       Status
	Phase        Phase
	Reason       Reason
	ElapsedTicks int
	Elapsed      time.Duration
	TimeLeft     int // Countdown seconds left; 0 for games without one
	Score        int
	Failures     int

	Board    Point // Board width and height; zero for games without a board
	Entities []Entity
	Params   Params
	Input    string // Pending text buffer for typing games

	Result  float64 // Metric recorded on end (cps, ms, level, seconds, wpm)
	Best    float64
	HasBest bool
	NewBest bool

	Stats map[string]float64 // Derived metrics (cps, wpm, accuracy, moves)
	Cues  []Cue              // Cues emitted since the previous snapshot
}

// Running reports whether the snapshot's session accepts input.
func (s Snapshot) Running() bool {
	return s.Status == StatusRunning
}

// Summary describes a finished session for the history log.
type Summary struct {
	SessionID string
	Game      string
	Mode      string
	Score     int
	Failures  int
	Result    float64
	Recorded  bool // Result is meaningful (false for false starts)
	Reason    Reason
	Duration  time.Duration
}
