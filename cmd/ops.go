package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"superapp-api/report"
	"superapp-api/store"
	"superapp-api/views"

	"github.com/spf13/cobra"
)

var (
	resetState bool
	reportOut  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default users and products if they are missing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		if resetState {
			if err := store.Reset(cmd.Context(), e.kv); err != nil {
				return err
			}
			e.log.Warn("all slots cleared")
		}
		snap, err := store.Load(cmd.Context(), e.kv)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "users: %d, products: %d, orders: %d\n",
			len(snap.Users), len(snap.Products), len(snap.Orders))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the admin statistics as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		snap, err := store.Load(cmd.Context(), e.kv)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"stats":   views.Stats(snap.Orders, snap.Users),
			"summary": views.StatusSummary(snap.Orders),
		})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export orders and statistics to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		snap, err := store.Load(cmd.Context(), e.kv)
		if err != nil {
			return err
		}
		f, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		if err := report.Write(f, snap); err != nil {
			return err
		}
		e.log.WithField("file", reportOut).Info("report written")
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&resetState, "reset", false, "Clear every slot before seeding")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "domi-report.xlsx", "Output file")
	rootCmd.AddCommand(seedCmd, statsCmd, reportCmd)
}
