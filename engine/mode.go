package engine

// Mode is the top-level state of a session. Player commands are only
// accepted while Playing.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModeShop
	ModePackOpening
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModeShop:
		return "shop"
	case ModePackOpening:
		return "pack-opening"
	case ModeGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}
