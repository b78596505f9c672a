package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runActivity(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if c.NArg() != 1 {
		return fmt.Errorf("expected a single address argument")
	}

	address, err := parseAddress(c.Args().First())
	if err != nil {
		return err
	}

	count := c.Uint64("count")
	if count == 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "address: %s\n", encodeKey(address))
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	ctx, end := startTransaction(m, "activity")
	defer end()

	activity, err := m.provider.RecentActivity(ctx, address, count)
	if err != nil {
		return err
	}

	return printJson(m.w, activity)
}
