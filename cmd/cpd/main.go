// The cpd command starts the control plane daemon.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/cmd/cpd/launcher"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/cli"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/signals"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(date) == 0 {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	ctx := signals.WithStandardSignals(context.Background())

	l := launcher.NewLauncher()
	cmd := cli.NewCommand(&cli.Program{
		Name: "cpd",
		Opts: launcher.Opts(l),
		Run: func() error {
			if err := l.Run(ctx); err != nil {
				return err
			}

			<-ctx.Done()

			// Tear down the launcher with a deadline so a wedged
			// connection cannot block exit forever.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return l.Shutdown(shutdownCtx)
		},
	})
	cmd.Version = fmt.Sprintf("%s (git: %s) build_date: %s", version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
