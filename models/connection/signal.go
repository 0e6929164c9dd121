package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Start a fresh game; replaces the session's current
	// game wholesale ("Play Again" goes through this too)
	CodeNewGame

	CodeShoot

	// Full render snapshot so a reconnecting client
	// can redraw the board from scratch
	CodeGameState

	CodeStats
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
