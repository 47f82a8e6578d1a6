package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tansawit/notiv-sub000/internal/encoder"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List compression profiles with config overrides applied",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(_ *cobra.Command, _ []string) error {
	profiles := appConfig.Profiles()
	reg := encoder.NewRegistry()

	fmt.Println()
	fmt.Printf("  %-16s %6s  %-6s %7s  %-10s %s\n", "PROFILE", "MAX", "FORMAT", "QUALITY", "BUDGET", "RETRY")
	for _, name := range profile.Names() {
		p := profiles[name]
		if _, err := reg.Resolve(p.Format); err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}

		quality := fmt.Sprintf("%d", p.Quality)
		if p.Lossless || p.Format == "png" {
			quality = "lossless"
		}
		budget, retry := "-", "-"
		if p.HasBudget() {
			budget = formatBytes(int64(p.ByteBudget))
			retry = fmt.Sprintf("x%.2f q%d", p.SecondPass.Scale, p.SecondPass.Quality)
		}
		fmt.Printf("  %-16s %6d  %-6s %7s  %-10s %s\n", name, p.MaxDimension, p.Format, quality, budget, retry)
	}
	fmt.Println()
	fmt.Printf("  %s\n", reg)
	fmt.Println()
	return nil
}
