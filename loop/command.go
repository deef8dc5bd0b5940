package loop

import "github.com/plus3/tetrodeck/engine"

// Input is a logical player command, independent of the device it came from.
type Input int

const (
	MoveLeft Input = iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	Hold
)

func (in Input) String() string {
	switch in {
	case MoveLeft:
		return "move-left"
	case MoveRight:
		return "move-right"
	case SoftDrop:
		return "soft-drop"
	case Rotate:
		return "rotate"
	case HardDrop:
		return "hard-drop"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

// Apply runs one input against the session and reports whether it was
// accepted.
func Apply(s *engine.Session, in Input) bool {
	switch in {
	case MoveLeft:
		return s.Move(-1, 0)
	case MoveRight:
		return s.Move(1, 0)
	case SoftDrop:
		return s.Move(0, 1)
	case Rotate:
		return s.Rotate()
	case HardDrop:
		return s.HardDrop()
	case Hold:
		return s.Hold()
	default:
		return false
	}
}
