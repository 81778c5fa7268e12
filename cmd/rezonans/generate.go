package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rezonans/internal/app"
)

func generateCmd() *cobra.Command {
	var (
		text string
		wait bool
	)

	cmd := &cobra.Command{
		Use:   "generate [url]",
		Short: "Submit a link for PR plan generation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) > 0 {
				url = args[0]
			}
			return withApp(func(ctx context.Context, a *app.Application) error {
				task, err := a.Submitter.SubmitLink(ctx, url, text)
				if err != nil {
					return err
				}
				fmt.Printf("Accepted: %s\n", task.ID)
				if !wait {
					fmt.Println("Run 'rezonans watch " + task.ID + "' to follow progress.")
					return nil
				}
				done, err := a.Poller.Track(ctx, task.ID)
				if err != nil {
					return err
				}
				printTask(done)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Raw article text instead of fetching the URL")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Poll until the plan is ready")

	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [id]",
		Short: "Poll a submitted plan until it reaches a final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				if _, err := a.Refresher.Refresh(ctx); err != nil {
					a.Logger.Warn("history refresh failed", "error", err)
				}
				task, err := a.Poller.Track(ctx, args[0])
				if err != nil {
					return err
				}
				printTask(task)
				return nil
			})
		},
	}
}
