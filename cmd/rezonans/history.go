package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rezonans/internal/app"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List known plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				tasks, err := a.Refresher.Refresh(ctx)
				if err != nil {
					a.Logger.Warn("history refresh failed, showing cached state", "error", err)
					tasks = a.Tracker.Snapshot()
				}
				max := limit
				if max <= 0 {
					max = a.Config.Generation.HistoryLimit
				}
				if max > 0 && len(tasks) > max {
					tasks = tasks[:max]
				}
				if len(tasks) == 0 {
					fmt.Println("No plans yet.")
					return nil
				}
				for _, t := range tasks {
					printTaskLine(t)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum plans to show")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one plan in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				if task, ok := a.Tracker.Get(args[0]); ok && task.Status.Terminal() {
					printTask(task)
					return nil
				}
				task, err := a.Refresher.Plan(ctx, args[0])
				if err != nil {
					return err
				}
				printTask(task)
				return nil
			})
		},
	}
}
