package voicevox

// State is the lifecycle state of a Core.
type State string

const (
	StateUnloaded    State = "unloaded"
	StateLoaded      State = "loaded"
	StateInitialized State = "initialized"
	StateFinalized   State = "finalized"
)

// loadedStates are the states in which the function table is usable.
var loadedStates = []State{StateLoaded, StateInitialized, StateFinalized}

// require returns an invalid-state error unless the Core is in one of the
// allowed states. Callers hold c.mu.
func (c *Core) require(op string, allowed ...State) error {
	for _, s := range allowed {
		if c.state == s {
			return nil
		}
	}
	return ErrInvalidState(op, c.state)
}
