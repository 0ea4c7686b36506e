package database

// State is the readiness of a connection handle.
type State int32

const (
	Disconnected State = iota
	Connected
	Connecting
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Connecting:
		return "connecting"
	case Disconnecting:
		return "disconnecting"
	default:
		return "disconnected"
	}
}
