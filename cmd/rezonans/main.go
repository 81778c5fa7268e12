package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rezonans/internal/app"
	"rezonans/internal/config"
	"rezonans/internal/logging"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "rezonans",
		Short:   "Rezonans - PR content generation client",
		Version: Version,
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(regenCmd())
	rootCmd.AddCommand(regenImageCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(likeCmd())
	rootCmd.AddCommand(profileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp wires configuration and the application around a command body.
// Ctrl-C cancels the context so long polls unwind cleanly.
func withApp(fn func(ctx context.Context, a *app.Application) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
