package entry

// State is the position of a draft in the submit flow.
type State int

const (
	Editing State = iota
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
