package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runTransaction(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if c.NArg() != 1 {
		return fmt.Errorf("expected a single signature argument")
	}

	sig, err := parseSignature(c.Args().First())
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "signature: %s\n", c.Args().First())
	}

	ctx, end := startTransaction(m, "tx")
	defer end()

	activity, err := m.provider.Transaction(ctx, sig)
	if err != nil {
		return err
	}

	return printJson(m.w, activity)
}
