package multiplayer

type GameState uint8

const (
	GameStateWaiting GameState = iota
	GameStatePlaying
	GameStateSettled
)

func (s GameState) String() string {
	switch s {
	case GameStateWaiting:
		return "waiting"
	case GameStatePlaying:
		return "playing"
	case GameStateSettled:
		return "settled"
	}
	return "unknown"
}

// WagerType controls how much each player stakes when joining.
type WagerType uint8

const (
	// WagerTypeSameWager requires every player to stake the game's wager.
	WagerTypeSameWager WagerType = iota

	// WagerTypeCustomWager lets each player stake between the game's
	// min and max bet.
	WagerTypeCustomWager
)

func (t WagerType) String() string {
	switch t {
	case WagerTypeSameWager:
		return "same_wager"
	case WagerTypeCustomWager:
		return "custom_wager"
	}
	return "unknown"
}
