package loop

// System is a step of the game loop. Systems run in registration order and
// may keep their own state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
