package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chrisng16/waitlist/config"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "waitlist",
		Short:        "Restaurant waitlist service and store display",
		SilenceUsage: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the waitlist version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	cfgFile string
	version = "dev"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")
	rootCmd.AddCommand(versionCmd, serveCmd, displayCmd, storeCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Error("waitlist exited with error", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and installs the JSON logger at the
// configured level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return cfg, nil
}
