package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kerbaras/animes/pkg/config"
	"github.com/kerbaras/animes/pkg/sources"
)

var (
	cfg      config.Config
	logger   *zap.Logger
	registry *sources.Registry

	flagConfig     string
	flagCatalog    string
	flagDownloads  string
	flagProvider   string
	flagSaveConfig bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "animes",
	Short: "Track anime releases and download new episodes",
	Long:  "Keep a personal catalog of anime, watch it for new episodes and download them",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger = newLogger(flagVerbose)
		registry = sources.Default()

		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagCatalog != "" {
			cfg.CatalogPath = flagCatalog
		}
		if flagDownloads != "" {
			cfg.DownloadDir = flagDownloads
		}
		if flagProvider != "" {
			cfg.DefaultProvider = flagProvider
		}
		if flagSaveConfig {
			if err := cfg.Save(flagConfig); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Catalog database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDownloads, "downloads", "", "Download directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagProvider, "provider", "p", "", "Provider to use (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagSaveConfig, "save-config", false, "Save the effective configuration back to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
}

func newLogger(verbose bool) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
