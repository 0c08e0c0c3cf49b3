package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/abhisek/detective/internal/app"
	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/logging"
	"github.com/spf13/cobra"
)

// runApp loads the case bank, opens the store, builds the session, and
// launches the TUI.
func runApp(cmd *cobra.Command, skipIntro bool) error {
	ctx := cmd.Context()

	repo, err := cases.Load()
	if err != nil {
		return fmt.Errorf("load case bank: %w", err)
	}

	logPath, err := cfg.ResolveLogPath()
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	logger, logFile, err := logging.OpenFile(logPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	sessOpts := []game.Option{game.WithLogger(logger)}
	if cfg.NoHistory {
		logger.InfoContext(ctx, "history disabled")
	} else {
		st, err := openStore(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "History unavailable:", err)
			fmt.Fprintln(os.Stderr, "Progress will not be logged.")
		} else {
			defer st.Close()
			sessOpts = append(sessOpts, game.WithEventRepo(st.EventRepo()))
		}
	}

	sess := game.NewSession(ctx, repo, sessOpts...)
	defer sess.End()

	return app.Run(app.Options{
		Session:     sess,
		Rand:        newRand(cfg.Seed),
		AutoAdvance: cfg.AutoAdvance,
		SkipWelcome: skipIntro,
	})
}

// newRand returns a generator fixed by seed, or clock-seeded when seed is 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
