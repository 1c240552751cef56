package generator

// State is the generation state of one widget.
type State int

const (
	// AwaitingSelection: no category chosen yet; Generate is a no-op.
	AwaitingSelection State = iota
	// Idle: a category is chosen and nothing has been generated.
	Idle
	// Loading: one request is in flight; Generate is a no-op.
	Loading
	// Success: a tweet is displayed and can be copied.
	Success
	// Failed: the last request failed; Generate may be retried.
	Failed
)

// String returns the display name of the state.
func (s State) String() string {
	names := []string{"AwaitingSelection", "Idle", "Loading", "Success", "Failed"}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// canGenerate reports whether Generate starts a request from s.
func canGenerate(s State) bool {
	switch s {
	case Idle, Success, Failed:
		return true
	default:
		return false
	}
}

// Snapshot is a read-only copy of a Machine's observable state.
type Snapshot struct {
	State    State
	Category string
	Text     string // set in Success
	Err      error  // set in Failed
	Copied   bool
}

// Request identifies one generation started by Begin.
type Request struct {
	Seq      uint64
	Category string
}

// Result is the resolver's answer to a Request.
type Result struct {
	Request Request
	Text    string
	Err     error
}
