package multiplayer

import (
	"github.com/gamba-labs/gamba-go/pkg/solana"
)

// BuildEditBet replaces the user's position in a game. The returned
// leave_game and join_game instructions must be submitted together, in
// order, within one transaction.
func BuildEditBet(params *JoinGameParams) ([]solana.Instruction, error) {
	join, err := BuildJoinGame(params)
	if err != nil {
		return nil, err
	}

	leave, err := BuildLeaveGame(&LeaveGameParams{
		User: params.User,
		Game: params.Game,
		Mint: params.Mint,
	})
	if err != nil {
		return nil, err
	}

	return []solana.Instruction{leave, join}, nil
}
