package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rezonans/internal/app"
)

func regenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regen [id] [platform]",
		Short: "Regenerate the text of one platform's post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				task, err := a.Regenerator.Text(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				idx := task.PostIndex(args[1])
				if idx >= 0 {
					printPost(task.Posts[idx])
				}
				return nil
			})
		},
	}
}

func regenImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regen-image [id] [index]",
		Short: "Regenerate one image within a plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %q", args[1])
			}
			return withApp(func(ctx context.Context, a *app.Application) error {
				task, err := a.Regenerator.Image(ctx, args[0], index)
				if err != nil {
					return err
				}
				if index >= 0 && index < len(task.Posts) {
					printPost(task.Posts[index])
				}
				return nil
			})
		},
	}
}
