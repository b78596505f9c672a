package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/gamba-labs/gamba-go/pkg/metrics"
	"github.com/gamba-labs/gamba-go/pkg/sdk"
	"github.com/gamba-labs/gamba-go/pkg/smartsend"
)

const appName = "gamba-inspect"

type metadata struct {
	ctx      context.Context
	provider *sdk.Provider
	nr       *newrelic.Application
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero"

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "decode gamba program state and transactions"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "log-level, l",
			Value: "warn",
			Usage: " logrus `LEVEL`",
		},
		cli.StringFlag{
			Name:   "new-relic-license",
			Value:  "",
			Usage:  " report traces to New Relic using `KEY`",
			EnvVar: "NEW_RELIC_LICENSE_KEY",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "tx",
			Usage:     "decode the instructions of a confirmed transaction",
			ArgsUsage: "SIGNATURE",
			Action:    runTransaction,
		},
		{
			Name:   "pools",
			Usage:  "list gamba pools",
			Action: runPools,
		},
		{
			Name:   "games",
			Usage:  "list multiplayer games",
			Action: runGames,
		},
		{
			Name:      "activity",
			Usage:     "decode the recent transactions of an address",
			ArgsUsage: "ADDRESS",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum transactions to output `COUNT`",
				},
			},
			Action: runActivity,
		},
	}

	app.Before = func(c *cli.Context) error {
		m := &metadata{
			ctx:     context.Background(),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}

		if license := c.GlobalString("new-relic-license"); len(license) > 0 {
			nr, err := newrelic.NewApplication(
				newrelic.ConfigFromEnvironment(),
				newrelic.ConfigAppName(appName),
				newrelic.ConfigLicense(license),
				newrelic.ConfigAppLogForwardingEnabled(true),
			)
			if err != nil {
				return errors.Wrap(err, "error connecting to new relic")
			}
			m.nr = nr
			m.ctx = metrics.NewContext(m.ctx, nr)
		}

		configureLogger(c.GlobalString("log-level"), m.nr)

		client := sdk.NewClient(m.ctx, sdk.WithEnvConfigs())
		m.provider = sdk.NewProvider(client, nil, sdk.WithEnvConfigs(), smartsend.WithEnvConfigs())

		c.App.Metadata["config"] = m
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if ok && m.nr != nil {
			m.nr.Shutdown(shutdownTimeout)
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func configureLogger(logLevel string, nr *newrelic.Application) {
	if nr != nil {
		logrus.SetFormatter(metrics.NewLogFormatter(nr, &logrus.JSONFormatter{}))
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", logLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}
}

// startTransaction returns a context carrying a New Relic transaction for
// the command, so provider calls are traced as segments.
func startTransaction(m *metadata, name string) (context.Context, func()) {
	if m.nr == nil {
		return m.ctx, func() {}
	}

	txn := m.nr.StartTransaction(appName + " " + name)
	return newrelic.NewContext(m.ctx, txn), txn.End
}
