package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rezonans/internal/app"
	"rezonans/internal/domain"
)

func scanCmd() *cobra.Command {
	var (
		brand string
		pick  int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the media field for brand mentions",
		Long: "Scans for mentions of the configured brand profile, or of an arbitrary\n" +
			"brand given with --brand. Use --pick to submit one of the found\n" +
			"candidates for plan generation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.Application) error {
				var (
					results []domain.ScanResult
					err     error
				)
				if brand != "" {
					results, err = a.Submitter.ScanBrand(ctx, brand)
				} else {
					results, err = a.Submitter.Scan(ctx)
				}
				if err != nil {
					return err
				}
				if pick <= 0 {
					printScanResults(results)
					return nil
				}
				if pick > len(results) {
					return fmt.Errorf("candidate %d out of range, scan found %d", pick, len(results))
				}
				task, err := a.Submitter.SubmitFromScan(ctx, results[pick-1])
				if err != nil {
					return err
				}
				fmt.Printf("Accepted: %s\n", task.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&brand, "brand", "b", "", "Scan for an arbitrary brand instead of the saved profile")
	cmd.Flags().IntVarP(&pick, "pick", "p", 0, "Submit candidate N from the scan results")

	return cmd
}
