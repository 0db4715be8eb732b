package pipeline

// State is the position of a run in the stage sequence.
type State string

const (
	StateIdle           State = "idle"
	StateClassifying    State = "classifying"
	StateRecommending   State = "recommending"
	StateResolvingAsset State = "resolving_asset"
	StateNarrating      State = "narrating"
	StateComplete       State = "complete"
	StateFailed         State = "failed"
)

// Terminal reports whether no further transition follows s within a run.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}

// Step returns the 1-based progress step of a working state, or 0.
func (s State) Step() int {
	switch s {
	case StateClassifying:
		return 1
	case StateRecommending:
		return 2
	case StateResolvingAsset:
		return 3
	case StateNarrating:
		return 4
	}
	return 0
}

// Description is a short human-readable label for progress output.
func (s State) Description() string {
	switch s {
	case StateIdle:
		return "waiting"
	case StateClassifying:
		return "determining level"
	case StateRecommending:
		return "choosing a course"
	case StateResolvingAsset:
		return "preparing course material"
	case StateNarrating:
		return "writing the diagnosis"
	case StateComplete:
		return "done"
	case StateFailed:
		return "failed"
	}
	return string(s)
}

// Observer receives every state transition of a run, in order.
type Observer func(State)
