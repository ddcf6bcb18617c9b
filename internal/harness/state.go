package harness

// State is where a case is in its lifecycle.
type State int

const (
	// Constructed means the case's fixtures are allocated.
	Constructed State = iota
	// SetUp means the set-up hook has run.
	SetUp
	// Running means the body is executing.
	Running
	// TornDown means the tear-down hook has run.
	TornDown
	// Verified means the cleanups (where doubles verify their expectations) have run.
	Verified
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case SetUp:
		return "set-up"
	case Running:
		return "running"
	case TornDown:
		return "torn-down"
	case Verified:
		return "verified"
	default:
		return "unknown"
	}
}
