// Package compile implements the presentation compiler (C7, spec §4.7):
// it turns a scored song into a totally ordered list of screen-mutation
// commands keyed by millisecond timestamps. Split into command.go (the
// command/variant types), timing.go (per-line show/hide math), emit.go
// (command accumulation and stable sort), and compiler.go (the
// top-level Compile entry point), mirroring the
// teacher's internal/corelx staged lexer/parser/codegen layout.
package compile

// LogicalColor is the small opaque color tag the scheduler resolves
// through the palette manager (spec §3).
type LogicalColor int

const (
	Background LogicalColor = iota
	ActiveText
	TransitionText
)

// Align controls how show_text positions its glyphs relative to pos.X.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Position is an abstract screen coordinate in 0-1000 x 0-1000 space
// (spec §3), mapped to 300x216 pixels by the scheduler.
type Position struct {
	X, Y int
}

// Kind discriminates the Command variant in play.
type Kind int

const (
	ClearScreen Kind = iota
	ShowText
	ChangeColor
	RemoveText
)

// priority orders commands sharing a timestamp (spec §4.7): clear_screen
// < show_metadata < show_text < change_color < transition < remove_text.
// metadata-originated show_text commands carry a lower priority than
// ordinary lyric show_text commands; "transition" has no distinct
// command kind in this implementation (see DESIGN.md) and sits between
// change_color and remove_text, unused by any emitted command.
type priority int

const (
	priorityClearScreen priority = iota
	priorityShowMetadata
	priorityShowText
	priorityChangeColor
	priorityTransition
	priorityRemoveText
)

// Command is one timestamped presentation-layer mutation (spec §3's
// PresentationCommand). Exactly the fields relevant to Kind are
// meaningful; the rest are zero.
type Command struct {
	TimestampMS int64
	priority    priority

	Kind Kind

	// ClearScreen
	Color LogicalColor

	// ShowText
	TextID   string
	Text     string
	Position Position
	Align    Align

	// ChangeColor
	StartChar, EndChar int

	// RemoveText uses TextID only.
}

// Priority exposes the ordering tier for sort stability checks in tests.
func (c Command) Priority() int { return int(c.priority) }
