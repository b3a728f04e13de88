package pipeline

// State is where one video ended up in the extract stage.
type State int

const (
	StatePending State = iota
	StateSourceEmpty
	StateExtractFailed
	StateValidationFailed
	StateAligned
	StatePersistFailed
	StateSucceeded
)

var stateNames = map[State]string{
	StatePending:          "pending",
	StateSourceEmpty:      "source_empty",
	StateExtractFailed:    "extract_failed",
	StateValidationFailed: "validation_failed",
	StateAligned:          "aligned",
	StatePersistFailed:    "persist_failed",
	StateSucceeded:        "succeeded",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Skips reports whether the state ends in a skip record and deletion.
func (s State) Skips() bool {
	switch s {
	case StateSourceEmpty, StateExtractFailed, StateValidationFailed:
		return true
	default:
		return false
	}
}

// Outcome is the result of processing one video.
type Outcome struct {
	VideoID  string
	URL      string
	State    State
	Reason   string // skip reason, empty on success
	DishName string
	Err      error
}

// Summary aggregates the outcomes of one extract run.
type Summary struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Skipped   int // failures that wrote a skip record
	Outcomes  []Outcome
}

// Summarize counts outcomes. Anything that did not succeed is a failure.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes), Outcomes: outcomes}
	for _, o := range outcomes {
		switch {
		case o.State == StateSucceeded:
			s.Succeeded++
		case o.State.Skips():
			s.Failed++
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}
