package main

import (
	"github.com/urfave/cli"
)

type poolView struct {
	Address   string `json:"address"`
	Authority string `json:"authority"`
	Mint      string `json:"mint"`
	Public    bool   `json:"public"`
	MinWager  uint64 `json:"min_wager"`
	Plays     uint64 `json:"plays"`
}

func runPools(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	ctx, end := startTransaction(m, "pools")
	defer end()

	pools, err := m.provider.Pools(ctx)
	if err != nil {
		return err
	}

	views := make([]poolView, 0, len(pools))
	for _, pool := range pools {
		views = append(views, poolView{
			Address:   encodeKey(pool.PublicKey),
			Authority: encodeKey(pool.Account.PoolAuthority),
			Mint:      encodeKey(pool.Account.UnderlyingTokenMint),
			Public:    pool.Account.IsPublic(),
			MinWager:  pool.Account.MinWager,
			Plays:     pool.Account.Plays,
		})
	}

	return printJson(m.w, views)
}
