package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Inspect referral dashboard data offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitializeWithWriter(cmd.ErrOrStderr(), logLevel, "text")
			decimal.MarshalJSONWithoutQuotes = true
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newStatusesCmd(), newCommissionCmd(), newProcessMessageCmd())
	return root
}

func newStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List the referral status lifecycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STEP\tSTATUS\tLABEL\tCATEGORY\tTERMINAL")
			for _, s := range domain.Statuses() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", s.Step, s.Status, s.Label, s.Category, s.Terminal)
			}
			return tw.Flush()
		},
	}
}

type commissionOutput struct {
	Summary domain.CommissionSummary  `json:"summary"`
	Display map[string]string         `json:"display"`
	Orphans []domain.LegacyCommission `json:"orphans,omitempty"`
}

func newCommissionCmd() *cobra.Command {
	var legacyPath string

	cmd := &cobra.Command{
		Use:   "commission <referrals.json>",
		Short: "Summarize commissions from a referral export",
		Long: `Reads a JSON array of referrals and prints the commission summary.
With --legacy, standalone commission rows from the earlier API are folded
into the referrals first; rows that match no referral are reported as orphans.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var referrals []domain.Referral
			if err := readJSONFile(args[0], &referrals); err != nil {
				return err
			}

			var orphans []domain.LegacyCommission
			if legacyPath != "" {
				var legacy []domain.LegacyCommission
				if err := readJSONFile(legacyPath, &legacy); err != nil {
					return err
				}
				referrals, orphans = domain.MergeCommissions(referrals, legacy)
				if len(orphans) > 0 {
					logger.Warn("Legacy commissions without a matching referral", "count", len(orphans))
				}
			}

			s := domain.Summarize(referrals)
			return writeJSON(cmd.OutOrStdout(), commissionOutput{Summary: s, Display: s.Formatted(), Orphans: orphans})
		},
	}
	cmd.Flags().StringVar(&legacyPath, "legacy", "", "JSON file of legacy commission rows to merge")
	return cmd
}

func newProcessMessageCmd() *cobra.Command {
	var (
		platform string
		baseURL  string
		refID    string
		template string
	)

	cmd := &cobra.Command{
		Use:   "process-message",
		Short: "Render a share message with a referral link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.Platform(platform)
			if !p.Valid() {
				return fmt.Errorf("unknown platform %q", platform)
			}
			if refID == "" {
				return fmt.Errorf("--ref is required")
			}
			tmpl := domain.DefaultTemplate(p)
			if template != "" {
				tmpl.Message = template
			}
			link := domain.ReferralURL(baseURL, refID)
			preview := domain.SharePreview{
				Platform: p,
				Message:  domain.ProcessMessage(tmpl.Message, link),
				Custom:   template != "",
			}
			if p.HasSubject() {
				preview.Subject = domain.ProcessMessage(tmpl.Subject, link)
			}
			return writeJSON(cmd.OutOrStdout(), preview)
		},
	}
	cmd.Flags().StringVar(&platform, "platform", string(domain.PlatformWhatsApp), "Share platform (email, whatsapp, linkedin)")
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:3000", "Dashboard origin for referral links")
	cmd.Flags().StringVar(&refID, "ref", "", "Referrer id")
	cmd.Flags().StringVar(&template, "template", "", "Custom message template; defaults to the built-in one")
	return cmd
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
