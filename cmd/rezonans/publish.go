package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rezonans/internal/app"
)

func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish [id] [platform]",
		Short: "Publish one platform's post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				result, err := a.Delivery.Publish(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Println(result)
				return nil
			})
		},
	}
}

func likeCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "like [id]",
		Short: "Mark a plan as liked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				task, err := a.Delivery.Like(ctx, args[0], !undo)
				if err != nil {
					return err
				}
				if task.Liked {
					fmt.Printf("Plan %s liked.\n", task.ID)
				} else {
					fmt.Printf("Plan %s unliked.\n", task.ID)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Remove the like instead")

	return cmd
}
