package main

import (
	"github.com/urfave/cli"
)

type gameView struct {
	Address    string `json:"address"`
	Maker      string `json:"maker"`
	State      string `json:"state"`
	Mint       string `json:"mint"`
	WagerType  string `json:"wager_type"`
	Wager      uint64 `json:"wager"`
	MaxPlayers uint32 `json:"max_players"`
	Players    int    `json:"players"`
	Expires    int64  `json:"expires"`
}

func runGames(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	ctx, end := startTransaction(m, "games")
	defer end()

	games, err := m.provider.MultiplayerGames(ctx)
	if err != nil {
		return err
	}

	views := make([]gameView, 0, len(games))
	for _, game := range games {
		views = append(views, gameView{
			Address:    encodeKey(game.PublicKey),
			Maker:      encodeKey(game.Account.GameMaker),
			State:      game.Account.State.String(),
			Mint:       encodeKey(game.Account.Mint),
			WagerType:  game.Account.WagerType.String(),
			Wager:      game.Account.Wager,
			MaxPlayers: game.Account.MaxPlayers,
			Players:    len(game.Account.Players),
			Expires:    game.Account.GameExpirationTimestamp,
		})
	}

	return printJson(m.w, views)
}
