package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rezonans/internal/app"
	"rezonans/internal/domain"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the brand profile used for monitoring scans",
	}
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileSetCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved brand profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				profile, err := a.Profiles.Load()
				if err != nil {
					return err
				}
				if profile == nil {
					fmt.Println("No brand profile saved. Use 'rezonans profile set --name ...'.")
					return nil
				}
				fmt.Printf("Name:     %s\n", profile.Name)
				if profile.Description != "" {
					fmt.Printf("About:    %s\n", profile.Description)
				}
				if profile.ToneOfVoice != "" {
					fmt.Printf("Tone:     %s\n", profile.ToneOfVoice)
				}
				if profile.TargetAudience != "" {
					fmt.Printf("Audience: %s\n", profile.TargetAudience)
				}
				if len(profile.Keywords) > 0 {
					fmt.Printf("Keywords: %s\n", strings.Join(profile.Keywords, ", "))
				}
				for _, ex := range profile.Examples {
					fmt.Printf("Example:  %s\n", ex)
				}
				return nil
			})
		},
	}
}

func profileSetCmd() *cobra.Command {
	var profile domain.BrandProfile

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the brand profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				if existing, err := a.Profiles.Load(); err == nil && existing != nil {
					merged := *existing
					if profile.Name != "" {
						merged.Name = profile.Name
					}
					if profile.Description != "" {
						merged.Description = profile.Description
					}
					if profile.ToneOfVoice != "" {
						merged.ToneOfVoice = profile.ToneOfVoice
					}
					if profile.TargetAudience != "" {
						merged.TargetAudience = profile.TargetAudience
					}
					if len(profile.Keywords) > 0 {
						merged.Keywords = profile.Keywords
					}
					if len(profile.Examples) > 0 {
						merged.Examples = profile.Examples
					}
					profile = merged
				}
				if err := a.Profiles.Save(profile); err != nil {
					return err
				}
				fmt.Printf("Profile %q saved.\n", profile.Name)
				if _, err := a.Refresher.Refresh(ctx); err != nil {
					a.Logger.Debug("history refresh failed", "error", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&profile.Name, "name", "", "Brand name")
	cmd.Flags().StringVar(&profile.Description, "description", "", "What the brand does")
	cmd.Flags().StringVar(&profile.ToneOfVoice, "tone", "", "Tone of voice for generated posts")
	cmd.Flags().StringVar(&profile.TargetAudience, "audience", "", "Target audience")
	cmd.Flags().StringSliceVar(&profile.Keywords, "keywords", nil, "Keywords to watch for")
	cmd.Flags().StringSliceVar(&profile.Examples, "examples", nil, "Example posts in the brand's voice")

	return cmd
}
