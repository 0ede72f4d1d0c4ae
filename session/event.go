package session

// EventType identifies a session event.
type EventType uint8

const (
	EventStateChanged EventType = iota
	EventPointAdded
	EventPathCompleted
	EventModeExited
)

func (t EventType) String() string {
	switch t {
	case EventStateChanged:
		return "state-changed"
	case EventPointAdded:
		return "point-added"
	case EventPathCompleted:
		return "path-completed"
	case EventModeExited:
		return "mode-exited"
	}
	return "unknown"
}

// Event describes something that happened in a session. Only the fields
// relevant to Type are set.
type Event struct {
	Type     EventType
	From, To State
	StitchID string
	Points   int
}
