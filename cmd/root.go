package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tansawit/notiv-sub000/internal/config"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	// appConfig is loaded before any command runs.
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "notiv",
	Short: "Screenshot capture and compression for page annotations",
	Long: `notiv — captures page screenshots for annotations and compresses them
into payloads small enough to upload or paste.

Frames come from a stored image file or a physical display. Each capture
can be cropped to a CSS-pixel rectangle, scaled to the profile's maximum
dimension and re-encoded once more at a smaller size when it exceeds the
profile's byte budget.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"notiv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func loadConfig(_ *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	appConfig = cfg
	logVerbose("config: target=%s out=%s workers=%d", cfg.DefaultTarget(), cfg.OutputDir, cfg.Workers)
	return nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[notiv] "+format+"\n", args...)
	}
}
