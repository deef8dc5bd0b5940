package loop

import (
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/shape"
)

// Commands buffers session mutations requested by systems during a frame.
// They are applied after every system has run so that no system sees a
// half-updated session.
type Commands struct {
	cards    []shape.ID
	upgrades []upgradeCommand
	jokers   []string
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type upgradeCommand struct {
	key   engine.UpgradeKey
	value any
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// AddCards queues cards to be added to the deck.
func (c *Commands) AddCards(ids ...shape.ID) {
	c.cards = append(c.cards, ids...)
}

// ApplyUpgrade queues an upgrade.
func (c *Commands) ApplyUpgrade(key engine.UpgradeKey, value any) {
	c.upgrades = append(c.upgrades, upgradeCommand{key: key, value: value})
}

// AddJoker queues a joker.
func (c *Commands) AddJoker(name string) {
	c.jokers = append(c.jokers, name)
}

// Flush applies all queued mutations to the session and resets the buffer.
// Commands queued while flushing, typically from deferred functions, are
// applied in a further pass of the same flush. Rejected upgrades and jokers
// are logged on the session logger.
func (c *Commands) Flush(s *engine.Session) {
	for !c.empty() {
		cards, upgrades, jokers, defers := c.cards, c.upgrades, c.jokers, c.defers
		c.cards, c.upgrades, c.jokers, c.defers = nil, nil, nil, nil

		if len(cards) > 0 {
			s.AddCardsToDeck(cards...)
		}
		for _, cmd := range upgrades {
			if err := s.ApplyUpgrade(cmd.key, cmd.value); err != nil {
				s.Logger().Warn("upgrade rejected", "err", err)
			}
		}
		for _, name := range jokers {
			if err := s.AddJoker(name); err != nil {
				s.Logger().Warn("joker rejected", "err", err)
			}
		}
		for _, fn := range defers {
			fn()
		}
	}
}

func (c *Commands) empty() bool {
	return len(c.cards) == 0 && len(c.upgrades) == 0 && len(c.jokers) == 0 && len(c.defers) == 0
}
