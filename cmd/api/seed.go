package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/studio-manager/internal/seed"
)

func seedCommand(a *app) *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into a registered studio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}

			report, err := seed.Run(cmd.Context(), db, slug, a.log)
			if err != nil {
				return fmt.Errorf("seed %s: %w", slug, err)
			}

			a.log.Info("demo data loaded",
				slog.String("studio", slug),
				slog.Int("staff", report.Staff),
				slog.Int("catalog_items", report.CatalogItems),
				slog.Int("customers", report.Customers),
				slog.Int("contracts", report.Contracts),
				slog.Int("appointments", report.Appointments),
				slog.Int("transactions", report.Transactions),
				slog.Int("retouch", report.Retouch),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "studio", "", "slug of the studio to fill")
	_ = cmd.MarkFlagRequired("studio")
	return cmd
}
