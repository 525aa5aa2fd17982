package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/kiosk/internal/config"
)

var (
	flagConfig string
	flagDebug  bool
	flagArea   string
	flagJSON   bool
)

// Set by PersistentPreRunE for commands that need configuration.
var (
	cfg    *config.Config
	logger = zap.NewNop()
)

// noConfig lists commands that run before (or without) a config file.
var noConfig = map[string]bool{
	"init":       true,
	"version":    true,
	"help":       true,
	"completion": true,
}

var rootCmd = &cobra.Command{
	Use:          "kiosk",
	Short:        "Kiosk: offline query router for local help kiosks",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Kiosk routes a free-text question to a domain manifest, picks a task,
decides which local knowledge packs to attach and prepares the prompt.

Manifests live in ~/.kiosk/manifests/ unless kiosk.yaml says otherwise.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if noConfig[cmd.Name()] {
			return nil
		}
		c, err := loadConfig()
		if err != nil {
			return fmt.Errorf("cannot load config: %w\nRun 'kiosk init' first.", err)
		}
		l, err := newLogger(c.Log.Level, flagDebug)
		if err != nil {
			return err
		}
		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.kiosk/kiosk.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log decisions at debug level")
	rootCmd.PersistentFlags().StringVar(&flagArea, "area", "", "Locality code substituted for <AREA> (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print machine-readable JSON")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
