package types

// SessionState is the per-user turn state
type SessionState string

const (
	SessionStateIdle       SessionState = "IDLE"
	SessionStateProcessing SessionState = "PROCESSING"
)

func (s SessionState) String() string {
	return string(s)
}
