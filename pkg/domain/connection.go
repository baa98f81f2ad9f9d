package domain

// ConnectionState is the lifecycle state of the push connection
type ConnectionState int

// connection states
const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateFailed
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state as its name in JSON responses
func (s ConnectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ConnectionStats is the informational block sent by the push server on get_stats
type ConnectionStats struct {
	ConnectedClients int     `json:"connected_clients"`
	Uptime           float64 `json:"uptime"`
	ServerVersion    string  `json:"server_version"`
}

// ConnectionHealth is a snapshot of the push connection as seen by readers
type ConnectionHealth struct {
	State     ConnectionState `json:"state"`
	Connected bool            `json:"connected"`
	Attempts  int             `json:"reconnect_attempts"`
	LastError string          `json:"last_error,omitempty"`
}
