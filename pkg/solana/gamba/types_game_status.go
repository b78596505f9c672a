package gamba

type GameStatus uint8

const (
	GameStatusNone GameStatus = iota
	GameStatusNotInitialized
	GameStatusReady
	GameStatusResultRequested
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusNone:
		return "none"
	case GameStatusNotInitialized:
		return "not_initialized"
	case GameStatusReady:
		return "ready"
	case GameStatusResultRequested:
		return "result_requested"
	}
	return "unknown"
}
