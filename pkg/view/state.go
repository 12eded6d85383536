package view

// State is a view's lifecycle stage. Views move forward through states
// monotonically; StateDisposed is terminal.
type State int

const (
	// StateConstructed is the stage between New and Initialize.
	StateConstructed State = iota
	// StateInitializing means the initialize hook chain is running.
	StateInitializing
	// StateInitialized means initialization finished; the view can render.
	StateInitialized
	// StateRendered means at least one render completed.
	StateRendered
	// StateDisposing means teardown is in flight. Guards re-entrant
	// disposal triggered by cascading destroy events.
	StateDisposing
	// StateDisposed is terminal. Lifecycle and binding operations on a
	// disposed view fail fast.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	case StateRendered:
		return "rendered"
	case StateDisposing:
		return "disposing"
	case StateDisposed:
		return "disposed"
	default:
		return "invalid"
	}
}
